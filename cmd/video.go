package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-campaign-kit/internal/config"
	"github.com/shouni/go-campaign-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// videoCmd は、動画プロンプト生成から縦型動画の生成までを実行するのだ。
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "8秒の縦型キャンペーン動画を生成するのだ。",
	Long: `分析結果とコンテンツ構成表から動画プロンプトを生成し、描画ゲートウェイへ
投げて縦型動画を生成するのだ。完了までポーリングで待つのだよ。`,
	RunE: videoCommand,
}

func videoCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(opts.URLs) == 0 {
		return fmt.Errorf("分析対象のURL（--url）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("動画生成パイプラインを起動するのだ！",
		"brand", opts.BrandName,
		"render_backend", cfg.RenderBackend)

	if err := pipeline.ExecuteVideo(ctx, cfg); err != nil {
		return fmt.Errorf("動画生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
