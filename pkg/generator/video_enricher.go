package generator

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-course-kit/pkg/domain"
)

// VideoEnricher は、生成済みの全チャプターの全レッスンに対して並列で動画を検索し、
// 見つかった場合のみ VideoURL を埋めるエンリッチメント工程です。
// 各呼び出しは自分のレッスンにのみ書き込むため、ロックなしの無制限ファンアウトが安全です。
type VideoEnricher struct {
	composer   *Composer
	maxResults int
}

// NewVideoEnricher は VideoEnricher の新しいインスタンスを初期化します。
func NewVideoEnricher(composer *Composer, maxResults int) *VideoEnricher {
	if maxResults <= 0 {
		maxResults = 1
	}
	return &VideoEnricher{composer: composer, maxResults: maxResults}
}

// Execute は全レッスンの動画検索を並列実行し、エンリッチ済みのチャプター群を返します。
// 検索アダプターはエラーを返さない契約のため、見つからないレッスンは無変更のまま残り、
// この工程がワークフローを失敗させることはありません。
func (e *VideoEnricher) Execute(ctx context.Context, courseTitle string, chapters []domain.Chapter) []domain.Chapter {
	total := 0
	for _, ch := range chapters {
		total += len(ch.Lessons)
	}
	slog.InfoContext(ctx, "Starting parallel video enrichment", "lessons", total)

	eg, egCtx := errgroup.WithContext(ctx)
	for ci := range chapters {
		for li := range chapters[ci].Lessons {
			ci, li := ci, li
			eg.Go(func() error {
				lesson := chapters[ci].Lessons[li]
				query := fmt.Sprintf("%s %s", courseTitle, lesson.Title)

				urls := e.composer.VideoSearcher.SearchVideos(egCtx, query, e.maxResults)
				if len(urls) > 0 {
					chapters[ci].Lessons[li].VideoURL = urls[0]
				}
				return nil
			})
		}
	}

	// 検索はエラーを返さないため Wait のエラーは context 起因のみ
	if err := eg.Wait(); err != nil {
		slog.WarnContext(ctx, "動画エンリッチメントが中断されました", "error", err)
	}

	enriched := 0
	for _, ch := range chapters {
		for _, lesson := range ch.Lessons {
			if lesson.VideoURL != "" {
				enriched++
			}
		}
	}
	slog.InfoContext(ctx, "Video enrichment completed", "enriched", enriched, "lessons", total)
	return chapters
}
