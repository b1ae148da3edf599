package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-course-kit/pkg/backend"
	"github.com/shouni/go-course-kit/pkg/domain"
	"github.com/shouni/go-course-kit/pkg/prompts"
)

// CourseOutlineRunner は、トピック文字列からコース構成案を生成するプランナー工程です。
// 構成案の生成失敗はワークフロー全体にとって致命的で、エラーはそのまま伝播します。
type CourseOutlineRunner struct {
	completer backend.TextCompleter
}

// NewCourseOutlineRunner は依存関係を注入して初期化します。
func NewCourseOutlineRunner(completer backend.TextCompleter) *CourseOutlineRunner {
	return &CourseOutlineRunner{completer: completer}
}

// Run はトピックから 4〜6 チャプターのコース構成案を生成します。
// チャプター位置は並び順で 1 から振り直し、連番不変条件をここで確立します。
func (r *CourseOutlineRunner) Run(ctx context.Context, topic string) (domain.CourseOutline, error) {
	slog.InfoContext(ctx, "CourseOutlineRunner: Planning course", "topic", topic)

	systemPrompt, userPrompt, schemaHint := prompts.BuildCourseOutlinePrompts(topic)

	var outline domain.CourseOutline
	if err := r.completer.Complete(ctx, systemPrompt, userPrompt, schemaHint, &outline); err != nil {
		return domain.CourseOutline{}, fmt.Errorf("コース構成案の生成に失敗しました: %w", err)
	}

	outline.Normalize()
	if err := outline.Validate(); err != nil {
		return domain.CourseOutline{}, fmt.Errorf("コース構成案が契約を満たしません: %w", err)
	}

	slog.InfoContext(ctx, "CourseOutlineRunner: Outline ready",
		"title", outline.Title, "chapters", len(outline.Chapters))
	return outline, nil
}
