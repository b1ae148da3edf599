package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Phase はワークフローを構成する工程の識別子です。ログと進捗報告に使います。
type Phase string

const (
	PhasePlanning            Phase = "PLANNING"
	PhaseChapterGeneration   Phase = "CHAPTER_GENERATION"
	PhaseThumbnailGeneration Phase = "THUMBNAIL_GENERATION"
	PhaseVideoEnrichment     Phase = "VIDEO_ENRICHMENT"
	PhaseQuestionGeneration  Phase = "QUESTION_GENERATION"
	PhaseValidation          Phase = "VALIDATION"
	PhaseAssembly            Phase = "ASSEMBLY"
)

// phaseDescriptor は1工程の名前と実行関数を束ねます。ワークフローは
// この記述子の順序付きリストとして定義し、実行順を宣言的に固定します。
type phaseDescriptor[S any] struct {
	name Phase
	run  func(ctx context.Context, state *S) error
}

// runPhases は記述子を先頭から順に実行します。いずれかの工程が失敗した時点で
// 後続は実行せず、工程名を付与したエラーを返します。
func runPhases[S any](ctx context.Context, phases []phaseDescriptor[S], state *S) error {
	for _, p := range phases {
		slog.InfoContext(ctx, "Workflow phase started", "phase", p.name)
		startTime := time.Now()

		if err := p.run(ctx, state); err != nil {
			return fmt.Errorf("phase %s: %w", p.name, err)
		}

		slog.InfoContext(ctx, "Workflow phase completed",
			"phase", p.name, "duration", time.Since(startTime).Round(time.Millisecond))
	}
	return nil
}
