package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-campaign-kit/internal/config"
	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/workflow"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// BuildWorkflowConfig は環境設定と実行時オプションからワークフロー設定を組み立てます。
func BuildWorkflowConfig(cfg *config.Config) workflow.Config {
	wfCfg := workflow.NewConfig(cfg.GeminiAPIKey, cfg.RunwayAPIKey)
	wfCfg.GeminiModel = cfg.GeminiModel
	wfCfg.ImageModel = cfg.GeminiImageModel
	wfCfg.RenderBackend = cfg.RenderBackend
	wfCfg.RunwayBaseURL = cfg.RunwayBaseURL
	wfCfg.ImageWebhookURL = cfg.ImageWebhookURL
	wfCfg.VideoWebhookURL = cfg.VideoWebhookURL

	if cfg.Options.OutputDir != "" {
		wfCfg.OutputDir = cfg.Options.OutputDir
	} else {
		wfCfg.OutputDir = config.DefaultOutputDir
	}
	return wfCfg
}

// BuildManager は共有依存を束ねたワークフローマネージャーを構築します。
func BuildManager(
	ctx context.Context,
	cfg *config.Config,
	httpClient httpkit.ClientInterface,
	reader remoteio.InputReader,
	writer remoteio.OutputWriter,
) (*workflow.Manager, error) {
	manager, err := workflow.New(ctx, workflow.ManagerArgs{
		Config:     BuildWorkflowConfig(cfg),
		HTTPClient: httpClient,
		Reader:     reader,
		Writer:     writer,
	})
	if err != nil {
		return nil, fmt.Errorf("ワークフローマネージャーの初期化に失敗しました: %w", err)
	}
	return manager, nil
}

// ApplyBrandInputs はコマンドラインのブランド情報をセッションストアへ反映します。
func ApplyBrandInputs(manager *workflow.Manager, opts config.GenerateOptions) {
	inputs := domain.UserInputs{
		Name:        opts.BrandName,
		Identity:    opts.Identity,
		ProductName: opts.ProductName,
		URLs:        opts.URLs,
	}
	switch opts.BusinessType {
	case string(domain.TypeService):
		inputs.Type = domain.TypeService
	case string(domain.TypeProduct):
		inputs.Type = domain.TypeProduct
	}
	manager.Store().SetInputs(inputs)
}
