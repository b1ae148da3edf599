package domain

import (
	"fmt"
	"strings"
)

const (
	// MinOptionsPerQuestion は選択肢の最小数です。
	MinOptionsPerQuestion = 2
	// MaxOptionsPerQuestion は選択肢の最大数です。
	MaxOptionsPerQuestion = 6
)

// Difficulty は問題の難易度を表します。
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Valid は既知の難易度かどうかを返します。
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Severity はバリデーターが問題に付ける指摘の深刻度です。
type Severity string

const (
	SeverityNone   Severity = "NONE"
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// TopicStub はクイズ構成案の1トピック分の骨子です。
type TopicStub struct {
	Name                string   `json:"name"`
	TargetQuestionCount int      `json:"target_question_count"`
	KeyPoints           []string `json:"key_points"`
}

// QuizOutline は AI モデルから返されるクイズ構成案全体の構造です。
type QuizOutline struct {
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	PassingScore     int         `json:"passing_score"`
	TimeLimitMinutes int         `json:"time_limit_minutes"`
	ShuffleQuestions bool        `json:"shuffle_questions"`
	ShuffleOptions   bool        `json:"shuffle_options"`
	Topics           []TopicStub `json:"topics"`
}

// Validate は構成案の基本契約を検査します。各トピックの目標問題数の合計は
// 要求された総問題数と一致しなければなりません。配分そのものはバックエンドの
// 裁量に委ね、エンジンは合計の不変条件だけを守ります。
func (o QuizOutline) Validate(requestedTotal int) error {
	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("クイズ構成案のタイトルが空です")
	}
	if len(o.Topics) == 0 {
		return fmt.Errorf("クイズ構成案にトピックがありません")
	}
	sum := 0
	for i, topic := range o.Topics {
		if strings.TrimSpace(topic.Name) == "" {
			return fmt.Errorf("トピック %d の名前が空です", i+1)
		}
		if topic.TargetQuestionCount <= 0 {
			return fmt.Errorf("トピック %q の目標問題数が不正です: %d", topic.Name, topic.TargetQuestionCount)
		}
		sum += topic.TargetQuestionCount
	}
	if sum != requestedTotal {
		return fmt.Errorf("トピックごとの目標問題数の合計 %d が要求された総数 %d と一致しません", sum, requestedTotal)
	}
	return nil
}

// Question は1問の多肢選択問題を表します。
type Question struct {
	Text               string     `json:"text"`
	Options            []string   `json:"options"`
	CorrectAnswerIndex int        `json:"correct_answer_index"` // 0始まり
	Explanation        string     `json:"explanation"`
	Difficulty         Difficulty `json:"difficulty"`
	Topic              string     `json:"topic"`
}

// Validate は問題の構造的な契約を検査します。選択肢は 2〜6 個で、
// 正解インデックスは常に選択肢の範囲内でなければなりません。
// これを破る応答は生成バックエンドの契約違反であり、組み立て前に拒否されます。
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("問題文が空です")
	}
	n := len(q.Options)
	if n < MinOptionsPerQuestion || n > MaxOptionsPerQuestion {
		return fmt.Errorf("問題 %q の選択肢数が %d〜%d の範囲外です: %d",
			truncate(q.Text, 40), MinOptionsPerQuestion, MaxOptionsPerQuestion, n)
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= n {
		return fmt.Errorf("問題 %q の正解インデックス %d が選択肢数 %d の範囲外です",
			truncate(q.Text, 40), q.CorrectAnswerIndex, n)
	}
	return nil
}

// ValidationVerdict はバリデーターの判定結果です。バリデーション工程の内部でのみ
// 生成・消費され、成果物には含まれません。
type ValidationVerdict struct {
	IsValid  bool     `json:"is_valid"`
	Issues   []string `json:"issues"`
	Severity Severity `json:"severity"`
}

// ChapterMaterial はクイズ生成の素材となる1チャプター分のレッスン本文です。
type ChapterMaterial struct {
	ChapterTitle string `json:"chapter_title"`
	LessonText   string `json:"lesson_text"`
}

// QuizGenerationInput はクイズワークフローへの入力です。
type QuizGenerationInput struct {
	CourseTitle       string            `json:"course_title"`
	CourseDescription string            `json:"course_description"`
	Materials         []ChapterMaterial `json:"materials"`
	QuestionCount     int               `json:"question_count"`
	Difficulty        Difficulty        `json:"difficulty"`
}

// Validate は入力の基本契約を検査します。
func (in QuizGenerationInput) Validate() error {
	if strings.TrimSpace(in.CourseTitle) == "" {
		return fmt.Errorf("コースタイトルが空です")
	}
	if in.QuestionCount <= 0 {
		return fmt.Errorf("要求問題数が不正です: %d", in.QuestionCount)
	}
	if !in.Difficulty.Valid() {
		return fmt.Errorf("不明な難易度です: %q", in.Difficulty)
	}
	return nil
}

// GeneratedQuiz はワークフローが呼び出し元へ返す最終成果物です。
type GeneratedQuiz struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	PassingScore     int        `json:"passing_score"`
	TimeLimitMinutes int        `json:"time_limit_minutes"`
	ShuffleQuestions bool       `json:"shuffle_questions"`
	ShuffleOptions   bool       `json:"shuffle_options"`
	Questions        []Question `json:"questions"`
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
