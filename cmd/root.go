package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-course-kit/internal/config"
	enginecfg "github.com/shouni/go-course-kit/pkg/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は CLI フラグの値を保持するのだ。addAppFlags で各フラグに紐付けられるのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物の保存先ディレクトリ（ローカル or gs://...）なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", enginecfg.DefaultGeminiModel, "使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", enginecfg.DefaultImageModel, "画像生成に使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")

	// --- コース生成固有設定 ---
	courseCmd.Flags().StringVarP(&opts.Topic, "topic", "t", "", "コース生成のテーマなのだ。")

	// --- クイズ生成固有設定 ---
	quizCmd.Flags().StringVarP(&opts.CourseFile, "course-file", "f", "", "素材となるコースJSONのパスなのだ。")
	quizCmd.Flags().StringVarP(&opts.SourceURL, "source-url", "u", "", "Webページから素材を取得するためのURLなのだ。")
	quizCmd.Flags().IntVarP(&opts.QuestionCount, "questions", "q", config.DefaultQuestionCount, "生成する問題の総数なのだ。")
	quizCmd.Flags().StringVarP(&opts.Difficulty, "difficulty", "d", config.DefaultDifficulty, "問題の難易度（EASY / MEDIUM / HARD）なのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-course-go",
		addAppFlags,
		preRunAppE,
		courseCmd,
		quizCmd,
	)
}
