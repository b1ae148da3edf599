package backend

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-course-kit/pkg/asset"
)

const (
	defaultCacheExpiration = 30 * time.Minute
	cacheCleanupInterval   = 1 * time.Hour
	defaultCacheTTL        = 1 * time.Hour

	thumbnailAspectRatio = "16:9"
	thumbnailFileName    = "thumbnail.png"
)

// ImageGenerator は画像生成サービスの契約です。生成した画像の URL を返し、
// いかなる失敗でもエラーは返さず空文字列を返します。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) string
}

// GeminiThumbnailer は gemini-image-kit を用いた ImageGenerator の実装です。
// 生成された画像バイト列を writer で保存し、そのパスを URL として返します。
type GeminiThumbnailer struct {
	generator imagekit.ImageGenerator
	writer    remoteio.OutputWriter
	outputDir string
}

// NewGeminiThumbnailer は画像生成コアとジェネレーターを初期化して返します。
func NewGeminiThumbnailer(
	httpClient httpkit.ClientInterface,
	aiClient gemini.GenerativeModel,
	model string,
	writer remoteio.OutputWriter,
	outputDir string,
) (*GeminiThumbnailer, error) {
	if writer == nil {
		return nil, fmt.Errorf("writer は必須です")
	}

	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	core, err := imagekit.NewGeminiImageCore(httpClient, imgCache, defaultCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗しました: %w", err)
	}

	imgGen, err := imagekit.NewGeminiGenerator(core, aiClient, model)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗しました: %w", err)
	}

	return &GeminiThumbnailer{
		generator: imgGen,
		writer:    writer,
		outputDir: outputDir,
	}, nil
}

// GenerateImage はプロンプトからサムネイル画像を生成し、保存先のパスを返します。
// 生成・保存のどちらが失敗しても警告ログを残して空文字列を返します。
func (t *GeminiThumbnailer) GenerateImage(ctx context.Context, prompt string) string {
	resp, err := t.generator.GenerateMangaPage(ctx, imagedom.ImagePageRequest{
		Prompt:      prompt,
		AspectRatio: thumbnailAspectRatio,
	})
	if err != nil {
		slog.WarnContext(ctx, "サムネイル画像の生成に失敗しました", "error", err)
		return ""
	}

	outputPath, err := asset.ResolveOutputPath(t.outputDir, thumbnailFileName)
	if err != nil {
		slog.WarnContext(ctx, "サムネイル保存パスの解決に失敗しました", "error", err)
		return ""
	}

	if err := t.writer.Write(ctx, outputPath, bytes.NewReader(resp.Data), resp.MimeType); err != nil {
		slog.WarnContext(ctx, "サムネイル画像の保存に失敗しました", "path", outputPath, "error", err)
		return ""
	}

	return outputPath
}
