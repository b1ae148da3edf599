package domain

import (
	"encoding/json"
	"testing"
)

func validOutline() QuizOutline {
	return QuizOutline{
		Title:            "Kubernetes確認テスト",
		PassingScore:     70,
		TimeLimitMinutes: 20,
		Topics: []TopicStub{
			{Name: "Pods", TargetQuestionCount: 6, KeyPoints: []string{"lifecycle", "spec"}},
			{Name: "Services", TargetQuestionCount: 4, KeyPoints: []string{"ClusterIP"}},
		},
	}
}

func TestQuizOutline_Validate(t *testing.T) {
	t.Run("目標問題数の合計が要求総数と一致すれば契約を満たすのだ", func(t *testing.T) {
		if err := validOutline().Validate(10); err != nil {
			t.Fatalf("想定外のエラーなのだ: %v", err)
		}
	})

	t.Run("合計が要求総数と一致しない構成案は拒否されるのだ", func(t *testing.T) {
		if err := validOutline().Validate(12); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
	})

	t.Run("トピックがない構成案は拒否されるのだ", func(t *testing.T) {
		o := validOutline()
		o.Topics = nil
		if err := o.Validate(0); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
	})

	t.Run("目標問題数が0のトピックは拒否されるのだ", func(t *testing.T) {
		o := validOutline()
		o.Topics[1].TargetQuestionCount = 0
		if err := o.Validate(6); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
	})
}

func TestQuestion_Validate(t *testing.T) {
	base := Question{
		Text:               "Podを直接作成するのはどのリソースですか？",
		Options:            []string{"Deployment", "kubectl run", "Service", "ConfigMap"},
		CorrectAnswerIndex: 1,
		Explanation:        "kubectl run は単一のPodを直接作成します。",
		Difficulty:         DifficultyEasy,
		Topic:              "Pods",
	}

	t.Run("正しい問題は契約を満たすのだ", func(t *testing.T) {
		if err := base.Validate(); err != nil {
			t.Fatalf("想定外のエラーなのだ: %v", err)
		}
	})

	t.Run("選択肢が1つしかない問題は拒否されるのだ", func(t *testing.T) {
		q := base
		q.Options = q.Options[:1]
		if err := q.Validate(); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
	})

	t.Run("選択肢が7つある問題は拒否されるのだ", func(t *testing.T) {
		q := base
		q.Options = []string{"a", "b", "c", "d", "e", "f", "g"}
		if err := q.Validate(); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
	})

	t.Run("正解インデックスが範囲外の問題は拒否されるのだ", func(t *testing.T) {
		q := base
		q.CorrectAnswerIndex = len(q.Options)
		if err := q.Validate(); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
		q.CorrectAnswerIndex = -1
		if err := q.Validate(); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
	})
}

func TestQuizGenerationInput_Validate(t *testing.T) {
	base := QuizGenerationInput{
		CourseTitle:   "Kubernetes入門",
		QuestionCount: 10,
		Difficulty:    DifficultyMedium,
	}

	t.Run("正しい入力は契約を満たすのだ", func(t *testing.T) {
		if err := base.Validate(); err != nil {
			t.Fatalf("想定外のエラーなのだ: %v", err)
		}
	})

	t.Run("不明な難易度は拒否されるのだ", func(t *testing.T) {
		in := base
		in.Difficulty = "IMPOSSIBLE"
		if err := in.Validate(); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
	})

	t.Run("問題数0は拒否されるのだ", func(t *testing.T) {
		in := base
		in.QuestionCount = 0
		if err := in.Validate(); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
	})
}

func TestValidationVerdict_JSON(t *testing.T) {
	t.Run("バリデーターのレスポンス形式をシミュレートするのだ", func(t *testing.T) {
		inputJSON := `{
			"is_valid": false,
			"issues": ["正解として示された選択肢が誤っています"],
			"severity": "HIGH"
		}`
		var verdict ValidationVerdict
		if err := json.Unmarshal([]byte(inputJSON), &verdict); err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}
		if verdict.IsValid {
			t.Error("is_validがfalseのはずなのだ")
		}
		if verdict.Severity != SeverityHigh {
			t.Errorf("深刻度が違うのだ: %s", verdict.Severity)
		}
	})
}
