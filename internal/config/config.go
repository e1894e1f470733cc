package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel        = "gemini-3-flash-preview"
	DefaultImageModel   = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultListenAddr   = ":8080"
	DefaultOutputDir    = "output/campaign"          // 生成アセットのデフォルト保存先なのだ
	DefaultAnalysisFile = "output/analysis.json"     // 分析結果のデフォルト保存先なのだ
	DefaultPostsFile    = "output/posts.json"        // 投稿生成結果のデフォルト保存先なのだ
	DefaultVideoFile    = "output/video.json"        // 動画生成結果のデフォルト保存先なのだ
	DefaultRenderScheme = "runway"
)

// Config はアプリケーション全体の環境設定（APIキーや公開先設定）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string

	RunwayAPIKey  string
	RunwayBaseURL string
	RenderBackend string

	ImageWebhookURL string
	VideoWebhookURL string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
// カレントディレクトリに .env があれば先に読み込みます。無くても構いません。
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		RunwayAPIKey:     envutil.GetEnv("RUNWAY_API_KEY", ""),
		RunwayBaseURL:    envutil.GetEnv("RUNWAY_BASE_URL", ""),
		RenderBackend:    envutil.GetEnv("RENDER_BACKEND", DefaultRenderScheme),
		ImageWebhookURL:  envutil.GetEnv("IMAGE_WEBHOOK_URL", ""),
		VideoWebhookURL:  envutil.GetEnv("VIDEO_WEBHOOK_URL", ""),
	}
	return cfg
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// ブランド入力関連
	URLs         []string // --url
	BrandName    string   // --brand
	Identity     string   // --identity
	BusinessType string   // --type
	ProductName  string   // --product

	// 入出力関連
	InputFile    string // --input-file
	OutputFile   string // --output-file
	OutputDir    string // --output-dir
	VideoCaption string // --video-caption

	// サーバー関連
	ListenAddr string // --listen

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
