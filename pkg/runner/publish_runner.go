package runner

import (
	"context"
	"fmt"

	"github.com/shouni/go-campaign-kit/pkg/publisher"
	"github.com/shouni/go-campaign-kit/pkg/store"
)

// PublishRunner は生成済みアセットの公開ステップの実行実体なのだ。
type PublishRunner struct {
	dispatcher *publisher.Dispatcher
	store      *store.Store
}

// NewPublishRunner は依存関係を注入して初期化します。
func NewPublishRunner(dispatcher *publisher.Dispatcher, st *store.Store) (*PublishRunner, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("Dispatcherが指定されていません")
	}
	if st == nil {
		return nil, fmt.Errorf("Storeが指定されていません")
	}
	return &PublishRunner{dispatcher: dispatcher, store: st}, nil
}

// Run はストアの生成済み投稿と動画から公開キューを組み立てて逐次公開します。
// videoCaption は動画に添えるキャプションで、空でも構いません。
func (pr *PublishRunner) Run(ctx context.Context, videoCaption string) (publisher.BatchResult, error) {
	data := pr.store.Snapshot()

	items := publisher.BuildQueue(
		data.AgentResponses.GeneratedPosts,
		data.AgentResponses.VideoResult,
		videoCaption,
	)
	if len(items) == 0 {
		return publisher.BatchResult{}, fmt.Errorf("公開できるアセットが1つもありません")
	}

	return pr.dispatcher.Publish(ctx, items)
}
