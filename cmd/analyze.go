package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-campaign-kit/internal/config"
	"github.com/shouni/go-campaign-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// analyzeCmd は、ブランドURLの分析のみを実行するのだ。
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "ブランドURLを分析してJSONとして保存するのだ。",
	Long: `指定されたURLのページを取得・要約し、ブランドの洞察（色、製品、トーンなど）を
JSON形式で出力するのだ。画像や動画の生成は行わないのだよ。`,
	RunE: analyzeCommand,
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(opts.URLs) == 0 {
		return fmt.Errorf("分析対象のURL（--url）を指定してほしいのだ")
	}

	cfg := config.LoadConfig()
	cfg.Options = opts

	slog.Info("URL分析モードを起動するのだ！",
		"urls", len(opts.URLs),
		"text_model", cfg.GeminiModel)

	if err := pipeline.ExecuteAnalyze(ctx, cfg); err != nil {
		return fmt.Errorf("URL分析中にエラーが発生したのだ: %w", err)
	}
	return nil
}
