package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-course-kit/pkg/domain"
	"github.com/shouni/go-course-kit/pkg/prompts"
	"github.com/shouni/go-course-kit/pkg/task"
)

// chapterInput は1チャプター展開タスクへの入力です。
type chapterInput struct {
	CourseTitle string
	Stub        domain.ChapterStub
}

// chapterResponse はチャプター展開の応答スキーマです。
type chapterResponse struct {
	Title    string          `json:"title"`
	Position int             `json:"position"`
	Lessons  []domain.Lesson `json:"lessons"`
}

// ChapterGenerator は、コース構成案の全チャプター骨子を並列でレッスン付きの
// 完全なチャプターへ展開します。チャプターは対等な構成要素のため、1つでも失敗すれば
// ワークフロー全体が失敗します（部分的なコースは組み立てません）。
type ChapterGenerator struct {
	composer *Composer
	expand   task.Task[chapterInput, domain.Chapter]
}

// NewChapterGenerator は ChapterGenerator の新しいインスタンスを初期化します。
func NewChapterGenerator(composer *Composer) *ChapterGenerator {
	g := &ChapterGenerator{composer: composer}
	g.expand = task.New("chapter_expand", g.expandChapter)
	return g
}

// Execute は、並列処理を用いて全チャプターを展開します。
// 結果は完了順ではなく構成案の並び順で格納し、位置の不変条件を保ちます。
func (g *ChapterGenerator) Execute(ctx context.Context, outline domain.CourseOutline) ([]domain.Chapter, error) {
	slog.InfoContext(ctx, "Starting parallel chapter generation", "chapters", len(outline.Chapters))

	chapters := make([]domain.Chapter, len(outline.Chapters))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, stub := range outline.Chapters {
		i, stub := i, stub
		eg.Go(func() error {
			if err := g.composer.RateLimiter.Wait(egCtx); err != nil {
				return err
			}

			logger := slog.With("chapter_position", stub.Position, "chapter_title", stub.Title)
			logger.Info("Starting chapter expansion")

			startTime := time.Now()
			chapter, err := g.expand.Invoke(egCtx, chapterInput{CourseTitle: outline.Title, Stub: stub})
			if err != nil {
				return fmt.Errorf("chapter %d (%s) generation failed: %w", stub.Position, stub.Title, err)
			}

			logger.Info("Chapter expansion completed", "duration", time.Since(startTime).Round(time.Millisecond))
			chapters[i] = chapter
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return chapters, nil
}

// expandChapter は1つのチャプター骨子をバックエンドで展開し、契約を検査します。
// レッスン位置はここで確立され、本文は Markdown の構造要素を含まなければなりません。
func (g *ChapterGenerator) expandChapter(ctx context.Context, in chapterInput) (domain.Chapter, error) {
	systemPrompt, userPrompt, schemaHint := prompts.BuildChapterPrompts(in.CourseTitle, in.Stub)

	var resp chapterResponse
	if err := g.composer.Completer.Complete(ctx, systemPrompt, userPrompt, schemaHint, &resp); err != nil {
		return domain.Chapter{}, err
	}

	chapter := domain.Chapter{
		Title:    in.Stub.Title,
		Position: in.Stub.Position,
		Lessons:  resp.Lessons,
	}
	for i := range chapter.Lessons {
		chapter.Lessons[i].Position = i + 1
	}

	if err := chapter.Validate(); err != nil {
		return domain.Chapter{}, err
	}
	for _, lesson := range chapter.Lessons {
		if !lesson.HasStructuredContent() {
			return domain.Chapter{}, fmt.Errorf("レッスン %q の本文が構造化されたMarkdownではありません", lesson.Title)
		}
	}
	return chapter, nil
}
