package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-campaign-kit/internal/config"
	"github.com/shouni/go-campaign-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// publishCmd は、生成済みアセットの逐次公開を実行するのだ。
var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "生成済みの投稿と動画をソーシャルプラットフォームへ公開するのだ。",
	Long: `保存済みの投稿生成結果（posts.json）を読み込み、Webhook経由で1件ずつ
公開するのだ。個別の失敗はスキップして最後まで流すのだよ。`,
	RunE: publishCommand,
}

func publishCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg := config.LoadConfig()
	cfg.Options = opts

	if cfg.ImageWebhookURL == "" && cfg.VideoWebhookURL == "" {
		return fmt.Errorf("公開先（IMAGE_WEBHOOK_URL / VIDEO_WEBHOOK_URL）を設定してほしいのだ")
	}

	slog.Info("公開パイプラインを起動するのだ！",
		"image_webhook", cfg.ImageWebhookURL != "",
		"video_webhook", cfg.VideoWebhookURL != "")

	if err := pipeline.ExecutePublish(ctx, cfg); err != nil {
		return fmt.Errorf("公開処理中にエラーが発生したのだ: %w", err)
	}
	return nil
}
