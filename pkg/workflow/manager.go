// Package workflow は、キャンペーンウィザードの各工程を担う Runner 群の
// 構築と、その共有依存（AI クライアント、描画ゲートウェイ、状態ストア）の
// 管理を提供します。
package workflow

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/shouni/go-campaign-kit/pkg/generator"
	"github.com/shouni/go-campaign-kit/pkg/render"
	"github.com/shouni/go-campaign-kit/pkg/store"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"
)

// ManagerArgs は Manager の初期化に必要な依存の束です。
// Store が nil の場合は新しいセッションストアを作成します。
type ManagerArgs struct {
	Config     Config
	HTTPClient httpkit.ClientInterface
	Reader     remoteio.InputReader
	Writer     remoteio.OutputWriter
	Store      *store.Store
}

// Manager は、ワークフローの各工程を担う Runner 群を構築・管理します。
// 描画ゲートウェイは描画を使う Runner の構築時に遅延初期化されるため、
// 分析や質問生成だけの利用なら描画バックエンドの認証情報は不要です。
type Manager struct {
	cfg          Config
	httpClient   httpkit.ClientInterface
	reader       remoteio.InputReader
	writer       remoteio.OutputWriter
	aiClient     gemini.GenerativeModel
	textGen      generator.TextGenerator
	store        *store.Store
	refValidator *render.ReferenceValidator

	gatewayOnce sync.Once
	gateway     render.Gateway
	gatewayErr  error
}

// New は、設定と共有依存を基に新しい Manager を初期化します。
func New(ctx context.Context, args ManagerArgs) (*Manager, error) {
	if args.HTTPClient == nil {
		return nil, fmt.Errorf("httpClient は必須です")
	}
	if args.Reader == nil {
		return nil, fmt.Errorf("InputReader は必須です")
	}
	if args.Writer == nil {
		return nil, fmt.Errorf("OutputWriter は必須です")
	}

	st := args.Store
	if st == nil {
		st = store.New()
	}

	aiClient, err := initializeAIClient(ctx, args.Config.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	textGen, err := generator.NewGeminiText(aiClient, args.Config.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("テキスト生成器の初期化に失敗しました: %w", err)
	}

	return &Manager{
		cfg:        args.Config,
		httpClient: args.HTTPClient,
		reader:     args.Reader,
		writer:     args.Writer,
		aiClient:   aiClient,
		textGen:    textGen,
		store:      st,
		refValidator: render.NewReferenceValidator(
			&http.Client{Timeout: args.Config.RequestTimeout},
			defaultTTL,
		),
	}, nil
}

// renderGateway は描画ゲートウェイを初回利用時に構築し、以後は共有します。
func (m *Manager) renderGateway() (render.Gateway, error) {
	m.gatewayOnce.Do(func() {
		m.gateway, m.gatewayErr = m.buildRenderGateway()
	})
	if m.gatewayErr != nil {
		return nil, fmt.Errorf("描画ゲートウェイの初期化に失敗しました: %w", m.gatewayErr)
	}
	return m.gateway, nil
}

// Store はこのマネージャーが束ねるセッションストアを返します。
func (m *Manager) Store() *store.Store {
	return m.store
}

// initializeAIClient は gemini クライアントを初期化します。
func initializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}
