package workflow

import (
	"time"
)

// デフォルト値の定義なのだ
const (
	DefaultGeminiModel     = "gemini-3-flash-preview"
	DefaultImageModel      = "gemini-3-pro-image-preview"
	DefaultRateInterval    = 2 * time.Second
	DefaultPollInterval    = 5 * time.Second
	DefaultMaxPollAttempts = 120
	DefaultAnalysisTTL     = 10 * time.Minute
)

// 描画バックエンドの識別子です。
const (
	BackendRunway = "runway"
	BackendGemini = "gemini"
)

// Config は Go Campaign Kit の各 Runner を動作させるための基本設定なのだ。
type Config struct {
	// --- AI Model Settings ---
	GeminiAPIKey string
	GeminiModel  string
	ImageModel   string

	// --- Render Gateway Settings ---
	RenderBackend   string
	RunwayAPIKey    string
	RunwayBaseURL   string
	RateInterval    time.Duration
	PollInterval    time.Duration
	MaxPollAttempts uint64

	// --- Publish Settings ---
	ImageWebhookURL string
	VideoWebhookURL string

	// --- Storage & Output Settings ---
	OutputDir string

	// --- Timeout & Caches ---
	RequestTimeout   time.Duration
	AnalysisCacheTTL time.Duration
}

// NewConfig はデフォルト値で初期化された Config を作成し、必要最小限の値をセットして返すのだ。
func NewConfig(geminiAPIKey, runwayAPIKey string) Config {
	cfg := DefaultConfig()
	cfg.GeminiAPIKey = geminiAPIKey
	cfg.RunwayAPIKey = runwayAPIKey
	return cfg
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数なのだ。
func DefaultConfig() Config {
	return Config{
		GeminiModel:      DefaultGeminiModel,
		ImageModel:       DefaultImageModel,
		RenderBackend:    BackendRunway,
		RateInterval:     DefaultRateInterval,
		PollInterval:     DefaultPollInterval,
		MaxPollAttempts:  DefaultMaxPollAttempts,
		RequestTimeout:   5 * time.Minute,
		AnalysisCacheTTL: DefaultAnalysisTTL,
	}
}
