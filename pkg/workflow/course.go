package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-course-kit/pkg/domain"
)

// CourseWorkflow は、1つのトピック文字列から完全なコース成果物を組み立てる
// オーケストレーターです。工程の実体には関知せず、順序と失敗方針だけを持ちます。
//
// 失敗方針:
//   - プランナーとチャプター展開の失敗は致命的で、部分成果物は返しません。
//   - サムネイルと動画は縮退可能で、失敗してもコースは完成します。
type CourseWorkflow struct {
	planner   CoursePlanner
	chapters  ChapterExpander
	thumbnail ThumbnailTask
	videos    VideoTask
}

// NewCourseWorkflow は全工程を注入して初期化します。いずれかが nil の場合はエラーを返します。
func NewCourseWorkflow(
	planner CoursePlanner,
	chapters ChapterExpander,
	thumbnail ThumbnailTask,
	videos VideoTask,
) (*CourseWorkflow, error) {
	if planner == nil || chapters == nil || thumbnail == nil || videos == nil {
		return nil, fmt.Errorf("CourseWorkflow の全工程が必須です")
	}
	return &CourseWorkflow{
		planner:   planner,
		chapters:  chapters,
		thumbnail: thumbnail,
		videos:    videos,
	}, nil
}

// courseState は工程間で受け渡す中間生成物です。1回の Run の中でのみ生きます。
type courseState struct {
	topic     string
	outline   domain.CourseOutline
	chapters  []domain.Chapter
	thumbnail string
	result    domain.GeneratedCourse
}

// Run はコース生成ワークフローを実行し、完成したコースを返します。
// チャプター展開とサムネイル生成は互いに独立なため、構成案の確定後に並行して走ります。
func (w *CourseWorkflow) Run(ctx context.Context, topic string) (domain.GeneratedCourse, error) {
	state := &courseState{topic: topic}

	phases := []phaseDescriptor[courseState]{
		{name: PhasePlanning, run: w.runPlanning},
		{name: PhaseChapterGeneration, run: w.runContentGeneration},
		{name: PhaseVideoEnrichment, run: w.runVideoEnrichment},
		{name: PhaseAssembly, run: w.runAssembly},
	}

	if err := runPhases(ctx, phases, state); err != nil {
		return domain.GeneratedCourse{}, err
	}

	slog.InfoContext(ctx, "Course workflow completed",
		"title", state.result.Title, "chapters", len(state.result.Chapters))
	return state.result, nil
}

func (w *CourseWorkflow) runPlanning(ctx context.Context, state *courseState) error {
	outline, err := w.planner.Run(ctx, state.topic)
	if err != nil {
		return err
	}
	state.outline = outline
	return nil
}

// runContentGeneration はチャプター展開とサムネイル生成を並行実行して合流します。
// サムネイル側はエラーを返さない契約のため、合流結果の成否はチャプター側だけで決まります。
func (w *CourseWorkflow) runContentGeneration(ctx context.Context, state *courseState) error {
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		chapters, err := w.chapters.Execute(egCtx, state.outline)
		if err != nil {
			return err
		}
		state.chapters = chapters
		return nil
	})

	eg.Go(func() error {
		slog.InfoContext(egCtx, "Workflow phase started", "phase", PhaseThumbnailGeneration)
		state.thumbnail = w.thumbnail.Execute(egCtx, state.outline.ThumbnailPrompt)
		return nil
	})

	return eg.Wait()
}

func (w *CourseWorkflow) runVideoEnrichment(ctx context.Context, state *courseState) error {
	state.chapters = w.videos.Execute(ctx, state.outline.Title, state.chapters)
	return nil
}

// runAssembly は最終成果物を組み立て、位置不変条件を最後にもう一度検査します。
func (w *CourseWorkflow) runAssembly(ctx context.Context, state *courseState) error {
	course := domain.GeneratedCourse{
		Title:       state.outline.Title,
		Description: state.outline.Description,
		Category:    state.outline.Category,
		Level:       state.outline.Level,
		Thumbnail:   state.thumbnail,
		Chapters:    state.chapters,
	}
	if err := course.Validate(); err != nil {
		return fmt.Errorf("組み立て済みコースが不変条件を満たしません: %w", err)
	}
	state.result = course
	return nil
}
