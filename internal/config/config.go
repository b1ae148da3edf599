package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"

	enginecfg "github.com/shouni/go-course-kit/pkg/config"
)

// デフォルト値の定義なのだ
const (
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultOutputDir     = "output" // 成果物のデフォルト保存先なのだ
	DefaultQuestionCount = 10
	DefaultDifficulty    = "MEDIUM"
)

// Config はアプリケーション全体の環境設定（APIキーやモデル設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	YouTubeAPIKey    string
	GeminiModel      string
	GeminiImageModel string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		YouTubeAPIKey:    envutil.GetEnv("YOUTUBE_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", enginecfg.DefaultGeminiModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", enginecfg.DefaultImageModel),
	}
	return cfg
}

// EngineConfig はアプリケーション設定から生成エンジンの設定へ変換するのだ。
func (c *Config) EngineConfig() enginecfg.Config {
	engine := enginecfg.DefaultConfig()
	engine.GeminiModel = c.GeminiModel
	engine.ImageModel = c.GeminiImageModel
	engine.GeminiAPIKey = c.GeminiAPIKey
	engine.YouTubeAPIKey = c.YouTubeAPIKey
	engine.OutputDir = c.Options.OutputDir
	return engine
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ソース入力関連
	Topic      string // --topic: コース生成のテーマ
	CourseFile string // --course-file: クイズ生成の素材となるコースJSON
	SourceURL  string // --source-url: クイズ素材をWebページから取得するためのURL

	// 生成結果の出力設定
	OutputDir string // --output-dir

	// クイズ生成関連
	QuestionCount int    // --questions
	Difficulty    string // --difficulty: EASY / MEDIUM / HARD

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
