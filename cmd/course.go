package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-course-kit/internal/config"
	"github.com/shouni/go-course-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// courseCmd は、AIによるコース一式（チャプター・レッスン・サムネイル・動画）の生成を実行するのだ。
var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "AIに学習コース一式を生成させますなのだ。",
	Long: `指定されたトピックから、チャプターとレッスンの構成、本文、サムネイル画像、
関連動画リンクまでを一括生成するのだ。出力はJSONとMarkdownになるのだよ。`,
	RunE: courseCommand,
}

func courseCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.Topic == "" {
		return fmt.Errorf("テーマ（--topic）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("コース生成パイプラインを起動するのだ！",
		"topic", opts.Topic,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"output", opts.OutputDir)

	// 3. 更新した config を考慮しつつパイプラインを実行するのだ
	if err := pipeline.ExecuteCourse(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
