package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-course-kit/internal/config"
	"github.com/shouni/go-course-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// quizCmd は、コース素材またはWebページからクイズの生成を実行するのだ。
var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "AIに確認クイズを生成させますなのだ。",
	Long: `生成済みのコースJSON、またはWebページの本文を素材として、
選択式の問題と解説を生成し、品質判定を通過したものだけを保存するのだ。`,
	RunE: quizCommand,
}

func quizCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.CourseFile == "" && opts.SourceURL == "" {
		return fmt.Errorf("素材（--course-file または --source-url）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.Options = opts

	slog.Info("クイズ生成パイプラインを起動するのだ！",
		"course_file", opts.CourseFile,
		"source_url", opts.SourceURL,
		"questions", opts.QuestionCount,
		"difficulty", opts.Difficulty)

	// 3. 更新した config を考慮しつつパイプラインを実行するのだ
	if err := pipeline.ExecuteQuiz(ctx, cfg); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
