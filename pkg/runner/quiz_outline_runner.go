package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-course-kit/pkg/backend"
	"github.com/shouni/go-course-kit/pkg/domain"
	"github.com/shouni/go-course-kit/pkg/prompts"
)

// QuizOutlineRunner は、コース素材からクイズ構成案を生成するプランナー工程です。
type QuizOutlineRunner struct {
	completer backend.TextCompleter
}

// NewQuizOutlineRunner は依存関係を注入して初期化します。
func NewQuizOutlineRunner(completer backend.TextCompleter) *QuizOutlineRunner {
	return &QuizOutlineRunner{completer: completer}
}

// Run はコース素材からクイズ構成案を生成します。トピックごとの目標問題数の配分は
// バックエンドの裁量に委ねますが、合計が要求総数と一致しない構成案は拒否します。
func (r *QuizOutlineRunner) Run(ctx context.Context, input domain.QuizGenerationInput) (domain.QuizOutline, error) {
	if err := input.Validate(); err != nil {
		return domain.QuizOutline{}, fmt.Errorf("クイズ生成入力が不正です: %w", err)
	}

	slog.InfoContext(ctx, "QuizOutlineRunner: Planning quiz",
		"course", input.CourseTitle, "questions", input.QuestionCount, "difficulty", input.Difficulty)

	systemPrompt, userPrompt, schemaHint := prompts.BuildQuizOutlinePrompts(input)

	var outline domain.QuizOutline
	if err := r.completer.Complete(ctx, systemPrompt, userPrompt, schemaHint, &outline); err != nil {
		return domain.QuizOutline{}, fmt.Errorf("クイズ構成案の生成に失敗しました: %w", err)
	}

	if err := outline.Validate(input.QuestionCount); err != nil {
		return domain.QuizOutline{}, fmt.Errorf("クイズ構成案が契約を満たしません: %w", err)
	}

	slog.InfoContext(ctx, "QuizOutlineRunner: Outline ready",
		"title", outline.Title, "topics", len(outline.Topics))
	return outline, nil
}
