package workflow

import (
	"fmt"

	"github.com/shouni/go-campaign-kit/pkg/generator"
	"github.com/shouni/go-campaign-kit/pkg/insight"
	"github.com/shouni/go-campaign-kit/pkg/publisher"
	"github.com/shouni/go-campaign-kit/pkg/runner"

	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// BuildAnalyzeRunner は、ブランド URL の分析を担当する Runner を作成します。
func (m *Manager) BuildAnalyzeRunner() (AnalyzeRunner, error) {
	extractor, err := extract.NewExtractor(m.httpClient)
	if err != nil {
		return nil, fmt.Errorf("extractor の初期化に失敗しました: %w", err)
	}

	analyzer, err := insight.NewGeminiAnalyzer(extractor, m.textGen, m.cfg.AnalysisCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("analyzer の初期化に失敗しました: %w", err)
	}

	return runner.NewAnalyzeRunner(analyzer, m.store)
}

// BuildMCQRunner は、選択式質問の生成を担当する Runner を作成します。
func (m *Manager) BuildMCQRunner() (MCQRunner, error) {
	return runner.NewMCQRunner(generator.NewMCQGenerator(m.textGen), m.store)
}

// BuildVideoPromptRunner は、動画プロンプトの生成を担当する Runner を作成します。
func (m *Manager) BuildVideoPromptRunner() (VideoPromptRunner, error) {
	return runner.NewVideoPromptRunner(generator.NewVideoPromptGenerator(m.textGen), m.store)
}

// BuildPostRunner は、投稿コンセプト生成と画像描画を担当する Runner を作成します。
func (m *Manager) BuildPostRunner() (PostRunner, error) {
	gateway, err := m.renderGateway()
	if err != nil {
		return nil, err
	}

	return runner.NewPostRunner(
		generator.NewConceptGenerator(m.textGen),
		gateway,
		m.refValidator,
		m.store,
		m.cfg.RateInterval,
	)
}

// BuildVideoRunner は、縦型動画の生成を担当する Runner を作成します。
func (m *Manager) BuildVideoRunner() (VideoRunner, error) {
	gateway, err := m.renderGateway()
	if err != nil {
		return nil, err
	}

	return runner.NewVideoRunner(
		generator.NewVoiceScriptGenerator(m.textGen),
		gateway,
		m.refValidator,
		m.store,
	)
}

// BuildPublishRunner は、成果物の公開を担当する Runner を作成します。
func (m *Manager) BuildPublishRunner() (PublishRunner, error) {
	dispatcher, err := publisher.NewDispatcher(m.cfg.ImageWebhookURL, m.cfg.VideoWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("dispatcher の初期化に失敗しました: %w", err)
	}

	return runner.NewPublishRunner(dispatcher, m.store)
}
