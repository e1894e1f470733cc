package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-campaign-kit/internal/config"
	"github.com/shouni/go-campaign-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// postsCmd は、分析から投稿コンセプト生成・画像描画までを実行するのだ。
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "投稿コンセプト3案とその画像を生成するのだ。",
	Long: `ブランドURLの分析結果からキャンペーンブリーフを組み立て、3つの投稿コンセプトと
それぞれのキャンペーン画像を生成するのだ。個別の描画失敗はスキップして続行するのだよ。`,
	RunE: postsCommand,
}

func postsCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(opts.URLs) == 0 {
		return fmt.Errorf("分析対象のURL（--url）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("投稿生成パイプラインを起動するのだ！",
		"brand", opts.BrandName,
		"text_model", cfg.GeminiModel,
		"render_backend", cfg.RenderBackend)

	if err := pipeline.ExecutePosts(ctx, cfg); err != nil {
		return fmt.Errorf("投稿生成中にエラーが発生したのだ: %w", err)
	}
	return nil
}
