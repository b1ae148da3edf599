package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/shouni/go-course-kit/pkg/domain"
)

func sampleQuestions(n int) []domain.Question {
	questions := make([]domain.Question, n)
	for i := range questions {
		questions[i] = domain.Question{
			Text:               fmt.Sprintf("Question %d?", i+1),
			Options:            []string{"a", "b", "c"},
			CorrectAnswerIndex: 1,
			Explanation:        "because",
			Difficulty:         domain.DifficultyEasy,
			Topic:              "Pods",
		}
	}
	return questions
}

func verdictJSON(severity domain.Severity, issues ...string) string {
	payload, _ := json.Marshal(map[string]any{
		"is_valid": severity == domain.SeverityNone,
		"issues":   issues,
		"severity": severity,
	})
	return string(payload)
}

func TestQuestionValidator_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("HIGH判定の問題だけが除外されるのだ", func(t *testing.T) {
		// 5問中、3問目（Question 3）だけをHIGHにする
		fc := &fakeCompleter{respond: func(_, userPrompt string, out any) error {
			if strings.Contains(userPrompt, "Question 3?") {
				return json.Unmarshal([]byte(verdictJSON(domain.SeverityHigh, "正解が誤りです")), out)
			}
			return json.Unmarshal([]byte(verdictJSON(domain.SeverityNone)), out)
		}}
		v := NewQuestionValidator(newTestComposer(fc, nil, nil))

		kept := v.Execute(ctx, sampleQuestions(5))
		if len(kept) != 4 {
			t.Fatalf("4問残るべきなのだ: %d", len(kept))
		}
		for _, q := range kept {
			if q.Text == "Question 3?" {
				t.Error("HIGH判定の問題が残ってはいけないのだ")
			}
		}
	})

	t.Run("LOWやMEDIUMの指摘つき問題は無変更で素通りするのだ", func(t *testing.T) {
		fc := &fakeCompleter{respond: respondJSON(verdictJSON(domain.SeverityMedium, "やや曖昧です"))}
		v := NewQuestionValidator(newTestComposer(fc, nil, nil))

		original := sampleQuestions(3)
		snapshot := make([]domain.Question, len(original))
		copy(snapshot, original)

		kept := v.Execute(ctx, original)
		if !reflect.DeepEqual(kept, snapshot) {
			t.Error("残った問題は一切変更されないべきなのだ")
		}
	})

	t.Run("判定バックエンドの失敗はFAIL-OPENで問題を残すのだ", func(t *testing.T) {
		fc := &fakeCompleter{respond: func(_, _ string, _ any) error {
			return errors.New("validator backend down")
		}}
		v := NewQuestionValidator(newTestComposer(fc, nil, nil))

		questions := sampleQuestions(7)
		kept := v.Execute(ctx, questions)
		if len(kept) != len(questions) {
			t.Errorf("壊れた品質ゲートがクイズを縮めてはいけないのだ: %d/%d", len(kept), len(questions))
		}
	})

	t.Run("同時実行はバッチサイズを超えないのだ", func(t *testing.T) {
		fc := &fakeCompleter{respond: respondJSON(verdictJSON(domain.SeverityNone))}
		v := NewQuestionValidator(newTestComposer(fc, nil, nil))

		v.Execute(ctx, sampleQuestions(17))
		if fc.calls != 17 {
			t.Errorf("全問が1回ずつ判定されるべきなのだ: %d", fc.calls)
		}
		if fc.maxInFlight > ValidationBatchSize {
			t.Errorf("同時実行数 %d がバッチサイズ %d を超えているのだ", fc.maxInFlight, ValidationBatchSize)
		}
	})

	t.Run("問題数が増えることはないのだ", func(t *testing.T) {
		fc := &fakeCompleter{respond: respondJSON(verdictJSON(domain.SeverityNone))}
		v := NewQuestionValidator(newTestComposer(fc, nil, nil))

		questions := sampleQuestions(4)
		kept := v.Execute(ctx, questions)
		if len(kept) > len(questions) {
			t.Error("バリデーターが問題数を増やしてはいけないのだ")
		}
	})

	t.Run("空のリストは空のまま返るのだ", func(t *testing.T) {
		fc := &fakeCompleter{respond: respondJSON(verdictJSON(domain.SeverityNone))}
		v := NewQuestionValidator(newTestComposer(fc, nil, nil))
		if kept := v.Execute(ctx, nil); len(kept) != 0 {
			t.Errorf("空のリストが返るべきなのだ: %v", kept)
		}
		if fc.calls != 0 {
			t.Error("バックエンドが呼ばれてはいけないのだ")
		}
	})
}
