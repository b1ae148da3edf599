package config

import (
	"time"
)

// デフォルト値の定義
const (
	DefaultGeminiModel    = "gemini-3-flash-preview"
	DefaultImageModel     = "gemini-3-pro-image-preview"
	DefaultRateInterval   = 2 * time.Second
	DefaultMaxVideoResults = 1
	DefaultExcerptLimit   = 4000 // バックエンドのトークン・レイテンシ上限を抑えるための抜粋バイト数
)

// Config は Go Course Kit の各 Runner を動作させるための基本設定です。
// ワークフロー実行中に変化しない不変の構成値のみを保持します。
type Config struct {
	// --- AI Model Settings ---
	GeminiModel string
	ImageModel  string

	// --- API Keys ---
	GeminiAPIKey  string
	YouTubeAPIKey string

	// --- Generation Settings ---
	RateInterval    time.Duration // 生成バックエンドへの連続呼び出しの最小間隔
	MaxVideoResults int           // 1レッスンあたりの動画検索の最大取得件数
	ExcerptLimit    int           // 問題生成に渡すレッスン抜粋の最大バイト数

	// --- Output Settings ---
	OutputDir string
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数です。
func DefaultConfig() Config {
	return Config{
		GeminiModel:     DefaultGeminiModel,
		ImageModel:      DefaultImageModel,
		RateInterval:    DefaultRateInterval,
		MaxVideoResults: DefaultMaxVideoResults,
		ExcerptLimit:    DefaultExcerptLimit,
	}
}
