package domain

import (
	"fmt"
	"strings"
)

const (
	// MinChaptersPerCourse は1つのコースに含めるチャプターの最小数です。
	MinChaptersPerCourse = 4
	// MaxChaptersPerCourse は1つのコースに含めるチャプターの最大数です。
	MaxChaptersPerCourse = 6
	// MinLessonsPerChapter は1つのチャプターに含めるレッスンの最小数です。
	MinLessonsPerChapter = 3
	// MaxLessonsPerChapter は1つのチャプターに含めるレッスンの最大数です。
	MaxLessonsPerChapter = 5
)

// ChapterStub は、プランナーが生成するコース構成案の1チャプター分の骨子です。
type ChapterStub struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
}

// CourseOutline は AI モデルから返されるコース構成案全体の構造です。
// プランナーが一度生成した後は不変で、後続のファンアウト工程がそのまま消費します。
type CourseOutline struct {
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Category        string        `json:"category"`
	Level           string        `json:"level"`
	ThumbnailPrompt string        `json:"thumbnail_prompt"`
	Chapters        []ChapterStub `json:"chapters"`
}

// Normalize はチャプターの Position を構成案の並び順で 1 から振り直します。
// 位置の連番不変条件はプランナーが確立する契約のため、モデル出力の値には依存しません。
func (o *CourseOutline) Normalize() {
	for i := range o.Chapters {
		o.Chapters[i].Position = i + 1
	}
}

// Validate は構成案がチャプター数とタイトルの契約を満たしているか検査します。
func (o CourseOutline) Validate() error {
	if strings.TrimSpace(o.Title) == "" {
		return fmt.Errorf("コース構成案のタイトルが空です")
	}
	n := len(o.Chapters)
	if n < MinChaptersPerCourse || n > MaxChaptersPerCourse {
		return fmt.Errorf("チャプター数が %d〜%d の範囲外です: %d", MinChaptersPerCourse, MaxChaptersPerCourse, n)
	}
	for i, stub := range o.Chapters {
		if strings.TrimSpace(stub.Title) == "" {
			return fmt.Errorf("チャプター %d のタイトルが空です", i+1)
		}
		if stub.Position != i+1 {
			return fmt.Errorf("チャプター位置が連番ではありません: index %d, position %d", i, stub.Position)
		}
	}
	return nil
}

// Lesson はチャプター内の1レッスンを表します。Content は Markdown 形式の本文です。
type Lesson struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
	VideoURL string `json:"video_url,omitempty"`
	Duration *int   `json:"duration,omitempty"` // 分単位。不明な場合は nil
	Content  string `json:"content"`
}

// HasStructuredContent は本文が Markdown の構造要素（見出し・リスト・コードブロック）を
// 含んでいるかを判定します。生成バックエンドが構造化されていない散文を返した場合の検出に使います。
func (l Lesson) HasStructuredContent() bool {
	for _, line := range strings.Split(l.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "#"),
			strings.HasPrefix(trimmed, "- "),
			strings.HasPrefix(trimmed, "* "),
			strings.HasPrefix(trimmed, "```"):
			return true
		}
	}
	return false
}

// Chapter は生成済みレッスンを持つ1チャプターを表します。
type Chapter struct {
	Title    string   `json:"title"`
	Position int      `json:"position"`
	Lessons  []Lesson `json:"lessons"`
}

// Validate はチャプターがレッスン数と位置の不変条件を満たしているか検査します。
// レッスン位置はチャプター内で 1 から欠番なく増加しなければなりません。
func (c Chapter) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("チャプターのタイトルが空です")
	}
	n := len(c.Lessons)
	if n < MinLessonsPerChapter || n > MaxLessonsPerChapter {
		return fmt.Errorf("チャプター %q のレッスン数が %d〜%d の範囲外です: %d",
			c.Title, MinLessonsPerChapter, MaxLessonsPerChapter, n)
	}
	for i, lesson := range c.Lessons {
		if strings.TrimSpace(lesson.Title) == "" {
			return fmt.Errorf("チャプター %q のレッスン %d のタイトルが空です", c.Title, i+1)
		}
		if lesson.Position != i+1 {
			return fmt.Errorf("チャプター %q のレッスン位置が連番ではありません: index %d, position %d",
				c.Title, i, lesson.Position)
		}
		if strings.TrimSpace(lesson.Content) == "" {
			return fmt.Errorf("チャプター %q のレッスン %q の本文が空です", c.Title, lesson.Title)
		}
	}
	return nil
}

// GeneratedCourse はワークフローが呼び出し元へ返す最終成果物です。
// 返却後の所有権は呼び出し元に移り、エンジン側は参照を保持しません。
type GeneratedCourse struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Level       string    `json:"level"`
	Thumbnail   string    `json:"thumbnail"` // 失敗時は空文字列
	Chapters    []Chapter `json:"chapters"`
}

// Validate は組み立て済みコース全体の位置不変条件を検査します。
func (gc GeneratedCourse) Validate() error {
	for i, ch := range gc.Chapters {
		if ch.Position != i+1 {
			return fmt.Errorf("チャプター位置が連番ではありません: index %d, position %d", i, ch.Position)
		}
		if err := ch.Validate(); err != nil {
			return err
		}
	}
	return nil
}
