package builder

import (
	"github.com/shouni/go-campaign-kit/internal/config"
	"github.com/shouni/go-campaign-kit/pkg/workflow"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config          // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、公開先URLなど）。
	Options    config.GenerateOptions  // Optionsは、コマンドラインから渡された実行時の設定です（URL、ブランド情報など）。
	Reader     remoteio.InputReader    // Readerは、外部データの読み込みに使用する入力元です。
	Writer     remoteio.OutputWriter   // Writerは、生成された内容を保存するための出力先です。
	Manager    *workflow.Manager       // Managerは、ウィザード各工程の Runner を構築するワークフローマネージャーです。
	httpClient httpkit.ClientInterface // httpClient は外部APIとの通信に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.ClientInterface,
	reader remoteio.InputReader,
	writer remoteio.OutputWriter,
	manager *workflow.Manager,
) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		httpClient: httpClient,
		Reader:     reader,
		Writer:     writer,
		Manager:    manager,
	}
}
