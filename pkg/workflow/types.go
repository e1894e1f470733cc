package workflow

import (
	"context"
	"time"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/publisher"
)

const (
	defaultGeminiTemperature = float32(0.1)
	defaultCacheExpiration   = 5 * time.Minute
	cacheCleanupInterval     = 15 * time.Minute
	defaultTTL               = 5 * time.Minute
)

// WorkflowBuilder は、キャンペーンウィザードの各工程を担う Runner を
// 構築するためのビルダー・インターフェースを定義します。
type WorkflowBuilder interface {
	BuildAnalyzeRunner() (AnalyzeRunner, error)
	BuildMCQRunner() (MCQRunner, error)
	BuildVideoPromptRunner() (VideoPromptRunner, error)
	BuildPostRunner() (PostRunner, error)
	BuildVideoRunner() (VideoRunner, error)
	BuildPublishRunner() (PublishRunner, error)
}

// AnalyzeRunner は、ブランド URL を解析し、構造化された分析結果を生成する責務を持ちます。
type AnalyzeRunner interface {
	Run(ctx context.Context, urls []string) (*domain.URLAnalysis, error)
}

// MCQRunner は、ウィザード状態から 3 問の選択式質問を生成する責務を持ちます。
type MCQRunner interface {
	Run(ctx context.Context) ([]domain.MCQQuestion, error)
}

// VideoPromptRunner は、構成表とブリーフから動画プロンプトを生成する責務を持ちます。
type VideoPromptRunner interface {
	Run(ctx context.Context) (string, error)
	RunStream(ctx context.Context, onDelta func(string) error) (string, error)
	RunImagePrompt(ctx context.Context) (string, error)
}

// PostRunner は、投稿コンセプトの生成と画像描画を行う責務を持ちます。
type PostRunner interface {
	Run(ctx context.Context) (domain.PostGenerationResult, error)
}

// VideoRunner は、保存済みプロンプトから縦型動画を生成する責務を持ちます。
type VideoRunner interface {
	Run(ctx context.Context) (domain.VideoGenerationResult, error)
}

// PublishRunner は、生成済みアセットをソーシャルプラットフォームへ逐次公開する責務を持ちます。
type PublishRunner interface {
	Run(ctx context.Context, videoCaption string) (publisher.BatchResult, error)
}
