package workflow

import (
	"fmt"

	"github.com/patrickmn/go-cache"

	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"

	"github.com/shouni/go-campaign-kit/pkg/render"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// buildRenderGateway は設定された描画バックエンドのゲートウェイを初期化します。
// 既定は Runway で、gemini を指定するとローカル描画に切り替わります。
func (m *Manager) buildRenderGateway() (render.Gateway, error) {
	switch m.cfg.RenderBackend {
	case BackendGemini:
		return m.buildGeminiGateway()
	case BackendRunway, "":
		return render.NewRunwayGateway(
			m.cfg.RunwayAPIKey,
			render.WithBaseURL(m.cfg.RunwayBaseURL),
			render.WithPolling(m.cfg.PollInterval, m.cfg.MaxPollAttempts),
		)
	default:
		return nil, fmt.Errorf("未知の描画バックエンドです: %q", m.cfg.RenderBackend)
	}
}

// buildGeminiGateway は gemini-image-kit の生成エンジンを束ねたローカル
// ゲートウェイを初期化します。
func (m *Manager) buildGeminiGateway() (render.Gateway, error) {
	core, err := initializeCore(m.reader, m.httpClient, m.aiClient)
	if err != nil {
		return nil, fmt.Errorf("画像生成エンジンの初期化に失敗しました: %w", err)
	}

	imageGenerator, err := initializeImageGenerator(m.cfg.ImageModel, core)
	if err != nil {
		return nil, fmt.Errorf("ImageGeneratorの初期化に失敗しました: %w", err)
	}

	return render.NewGeminiGateway(imageGenerator, m.writer, m.cfg.OutputDir)
}

// initializeImageGenerator は、画像キャッシュを含む ImageGenerator を初期化します。
func initializeImageGenerator(model string, core *imagekit.GeminiImageCore) (imagekit.ImageGenerator, error) {
	return imagekit.NewGeminiGenerator(
		model,
		core,
	)
}

// initializeCore 提供された依存関係で構成された GeminiImageCore インスタンスを初期化して返します。
func initializeCore(reader remoteio.InputReader, httpClient httpkit.ClientInterface, aiClient gemini.GenerativeModel) (*imagekit.GeminiImageCore, error) {
	imgCache := cache.New(defaultCacheExpiration, cacheCleanupInterval)
	core, err := imagekit.NewGeminiImageCore(
		aiClient,
		reader,
		httpClient,
		imgCache,
		defaultTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCore の初期化に失敗しました: %w", err)
	}

	return core, nil
}
