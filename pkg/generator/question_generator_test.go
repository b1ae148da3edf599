package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shouni/go-course-kit/pkg/domain"
)

func quizOutlineFixture() domain.QuizOutline {
	return domain.QuizOutline{
		Title: "確認テスト",
		Topics: []domain.TopicStub{
			{Name: "Pods", TargetQuestionCount: 6, KeyPoints: []string{"lifecycle"}},
			{Name: "Services", TargetQuestionCount: 4, KeyPoints: []string{"ClusterIP"}},
		},
	}
}

func quizInputFixture() domain.QuizGenerationInput {
	return domain.QuizGenerationInput{
		CourseTitle:   "Kubernetes入門",
		QuestionCount: 10,
		Difficulty:    domain.DifficultyMedium,
		Materials: []domain.ChapterMaterial{
			{ChapterTitle: "Pods", LessonText: "Podのlifecycleについて。\n\nServiceはClusterIPを持つ。"},
		},
	}
}

// questionsJSON は count 問の正しい問題リスト応答を合成するのだ。
func questionsJSON(count int) string {
	questions := make([]map[string]any, count)
	for i := range questions {
		questions[i] = map[string]any{
			"text":                 fmt.Sprintf("Question %d?", i+1),
			"options":              []string{"a", "b", "c", "d"},
			"correct_answer_index": i % 4,
			"explanation":          "because",
			"difficulty":           "MEDIUM",
			"topic":                "",
		}
	}
	payload, _ := json.Marshal(map[string]any{"questions": questions})
	return string(payload)
}

func TestQuestionGenerator_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("トピックごとの目標数以上の問題がトピック順に平坦化されるのだ", func(t *testing.T) {
		fc := &fakeCompleter{respond: func(_, userPrompt string, out any) error {
			if strings.Contains(userPrompt, `"Pods"`) {
				return json.Unmarshal([]byte(questionsJSON(6)), out)
			}
			return json.Unmarshal([]byte(questionsJSON(4)), out)
		}}
		g := NewQuestionGenerator(newTestComposer(fc, nil, nil), 4000)

		questions, err := g.Execute(ctx, quizOutlineFixture(), quizInputFixture())
		if err != nil {
			t.Fatalf("想定外のエラーなのだ: %v", err)
		}
		if len(questions) < 10 {
			t.Fatalf("問題数が要求総数に届かないのだ: %d", len(questions))
		}

		counts := map[string]int{}
		for _, q := range questions {
			counts[q.Topic]++
		}
		if counts["Pods"] < 6 {
			t.Errorf("Podsの問題が6問以上あるべきなのだ: %d", counts["Pods"])
		}
		if counts["Services"] < 4 {
			t.Errorf("Servicesの問題が4問以上あるべきなのだ: %d", counts["Services"])
		}
		// 平坦化はトピックの並び順を保つ
		for i := 0; i < counts["Pods"]; i++ {
			if questions[i].Topic != "Pods" {
				t.Errorf("先頭 %d 問は Pods のはずなのだ: %q", counts["Pods"], questions[i].Topic)
				break
			}
		}
	})

	t.Run("目標数未満しか返らないトピックは全体を失敗させるのだ", func(t *testing.T) {
		fc := &fakeCompleter{respond: func(_, userPrompt string, out any) error {
			if strings.Contains(userPrompt, `"Services"`) {
				return json.Unmarshal([]byte(questionsJSON(2)), out)
			}
			return json.Unmarshal([]byte(questionsJSON(6)), out)
		}}
		g := NewQuestionGenerator(newTestComposer(fc, nil, nil), 4000)

		if _, err := g.Execute(ctx, quizOutlineFixture(), quizInputFixture()); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
	})

	t.Run("1トピックのバックエンド失敗は致命的なのだ", func(t *testing.T) {
		cause := errors.New("rate limited")
		fc := &fakeCompleter{respond: func(_, userPrompt string, out any) error {
			if strings.Contains(userPrompt, `"Pods"`) {
				return cause
			}
			return json.Unmarshal([]byte(questionsJSON(4)), out)
		}}
		g := NewQuestionGenerator(newTestComposer(fc, nil, nil), 4000)

		_, err := g.Execute(ctx, quizOutlineFixture(), quizInputFixture())
		if !errors.Is(err, cause) {
			t.Fatalf("元のエラーが伝播すべきなのだ: %v", err)
		}
	})

	t.Run("正解インデックスが範囲外の問題は組み立て前に拒否されるのだ", func(t *testing.T) {
		broken := `{"questions": [
			{"text": "q", "options": ["a", "b"], "correct_answer_index": 2,
			 "explanation": "e", "difficulty": "EASY", "topic": ""}
		]}`
		outline := domain.QuizOutline{
			Title:  "t",
			Topics: []domain.TopicStub{{Name: "X", TargetQuestionCount: 1}},
		}
		in := quizInputFixture()
		in.QuestionCount = 1

		fc := &fakeCompleter{respond: respondJSON(broken)}
		g := NewQuestionGenerator(newTestComposer(fc, nil, nil), 4000)

		if _, err := g.Execute(ctx, outline, in); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
	})
}

func TestRelevantExcerpt(t *testing.T) {
	materials := []domain.ChapterMaterial{
		{ChapterTitle: "ch1", LessonText: "PodはKubernetesの最小単位です。\n\nServiceは安定したIPを提供します。"},
		{ChapterTitle: "ch2", LessonText: "ConfigMapは設定を保持します。"},
	}

	t.Run("キーポイントを含む段落だけが抜粋されるのだ", func(t *testing.T) {
		got := relevantExcerpt(materials, []string{"Service"}, 4000)
		if !strings.Contains(got, "Service") {
			t.Errorf("キーポイントを含む段落が抜粋されるべきなのだ: %q", got)
		}
		if strings.Contains(got, "ConfigMap") {
			t.Errorf("無関係な段落は抜粋されないべきなのだ: %q", got)
		}
	})

	t.Run("一致する段落がなければ素材全体を先頭から使うのだ", func(t *testing.T) {
		got := relevantExcerpt(materials, []string{"Ingress"}, 4000)
		if !strings.Contains(got, "Pod") {
			t.Errorf("素材の先頭が使われるべきなのだ: %q", got)
		}
	})

	t.Run("抜粋は上限バイト数に収まるのだ", func(t *testing.T) {
		got := relevantExcerpt(materials, nil, 20)
		if len(got) > 20 {
			t.Errorf("抜粋が上限を超えているのだ: %d bytes", len(got))
		}
	})
}
