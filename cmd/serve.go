package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-campaign-kit/internal/builder"
	"github.com/shouni/go-campaign-kit/internal/config"
	"github.com/shouni/go-campaign-kit/internal/server"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/spf13/cobra"
)

// serveCmd は、ウィザード API サーバーを起動するのだ。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "キャンペーンウィザードのAPIサーバーを起動するのだ。",
	Long: `URL分析から投稿・動画の生成、公開までをHTTP APIとして提供するのだ。
ウィザードの状態はサーバープロセス内のセッションストアに保持されるのだよ。`,
	RunE: serveCommand,
}

func serveCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := config.LoadConfig()
	cfg.Options = opts

	httpClient := httpkit.New(opts.HTTPTimeout)
	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return fmt.Errorf("GCSクライアントファクトリの初期化に失敗したのだ: %w", err)
	}
	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return err
	}

	manager, err := builder.BuildManager(ctx, cfg, httpClient, reader, writer)
	if err != nil {
		return err
	}

	srv, err := server.New(manager)
	if err != nil {
		return fmt.Errorf("サーバーの初期化に失敗したのだ: %w", err)
	}

	slog.Info("ウィザードAPIサーバーを起動するのだ！",
		"addr", opts.ListenAddr,
		"text_model", cfg.GeminiModel,
		"render_backend", cfg.RenderBackend)

	return srv.Run(opts.ListenAddr)
}
