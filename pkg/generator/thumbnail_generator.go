package generator

import (
	"context"
	"log/slog"
	"time"
)

// ThumbnailGenerator は、プランナーが生成した画像プロンプトからコースサムネイルの
// URL を取得するエンリッチメント工程です。失敗は致命的ではなく、空文字列に縮退します。
type ThumbnailGenerator struct {
	composer *Composer
}

// NewThumbnailGenerator は ThumbnailGenerator の新しいインスタンスを初期化します。
func NewThumbnailGenerator(composer *Composer) *ThumbnailGenerator {
	return &ThumbnailGenerator{composer: composer}
}

// Execute はサムネイル画像を生成し URL を返します。アダプターの契約上エラーは発生せず、
// 失敗時は空文字列が返ります。その場合もワークフローは継続します。
func (g *ThumbnailGenerator) Execute(ctx context.Context, prompt string) string {
	if prompt == "" {
		slog.InfoContext(ctx, "サムネイルプロンプトが空のため生成をスキップします")
		return ""
	}

	slog.InfoContext(ctx, "Starting thumbnail generation")
	startTime := time.Now()

	url := g.composer.Thumbnailer.GenerateImage(ctx, prompt)
	if url == "" {
		slog.WarnContext(ctx, "サムネイル生成に失敗したため空のまま継続します")
		return ""
	}

	slog.InfoContext(ctx, "Thumbnail generation completed",
		"url", url, "duration", time.Since(startTime).Round(time.Millisecond))
	return url
}
