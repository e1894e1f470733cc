// Package server は、キャンペーンウィザードの HTTP API を提供します。
// 各エンドポイントはワークフローマネージャーが構築した Runner を呼び出す
// 薄いアダプターで、状態はすべてセッションストアに集約されます。
package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-campaign-kit/pkg/store"
	"github.com/shouni/go-campaign-kit/pkg/workflow"
)

// videoTimeout は動画生成エンドポイントの上限時間です。submit と
// ポーリングを合わせてここまで待ちます。
const videoTimeout = 300 * time.Second

// Server はウィザード API の HTTP サーバーです。
type Server struct {
	engine *gin.Engine
	store  *store.Store

	analyze     workflow.AnalyzeRunner
	mcq         workflow.MCQRunner
	videoPrompt workflow.VideoPromptRunner
	posts       workflow.PostRunner
	video       workflow.VideoRunner
	publish     workflow.PublishRunner
}

// New は Runner 群を構築し、ルーティング済みのサーバーを返します。
// 公開エンドポイントが未設定の場合、公開系ルートだけを無効にします。
func New(manager *workflow.Manager) (*Server, error) {
	s := &Server{
		engine: gin.Default(),
		store:  manager.Store(),
	}

	var err error
	if s.analyze, err = manager.BuildAnalyzeRunner(); err != nil {
		return nil, fmt.Errorf("AnalyzeRunnerの構築に失敗しました: %w", err)
	}
	if s.mcq, err = manager.BuildMCQRunner(); err != nil {
		return nil, fmt.Errorf("MCQRunnerの構築に失敗しました: %w", err)
	}
	if s.videoPrompt, err = manager.BuildVideoPromptRunner(); err != nil {
		return nil, fmt.Errorf("VideoPromptRunnerの構築に失敗しました: %w", err)
	}
	if s.posts, err = manager.BuildPostRunner(); err != nil {
		return nil, fmt.Errorf("PostRunnerの構築に失敗しました: %w", err)
	}
	if s.video, err = manager.BuildVideoRunner(); err != nil {
		return nil, fmt.Errorf("VideoRunnerの構築に失敗しました: %w", err)
	}
	// 公開先 Webhook が未設定の構成は有効なので、ここだけ失敗を許容します。
	s.publish, _ = manager.BuildPublishRunner()

	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.POST("/analyze-urls", s.handleAnalyzeURLs)
		api.POST("/generate-mcqs", s.handleGenerateMCQs)
		api.POST("/mcq-answer", s.handleMCQAnswer)
		api.POST("/video-prompt", s.handleVideoPrompt)
		api.POST("/image-prompt", s.handleImagePrompt)
		api.POST("/post-generation", s.handlePostGeneration)
		api.POST("/generate-video", s.handleGenerateVideo)
		api.POST("/publish", s.handlePublish)

		api.GET("/wizard", s.handleWizard)
		api.POST("/wizard/reset", s.handleWizardReset)
	}
}

// Run は指定アドレスでサーバーを起動します。
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}
