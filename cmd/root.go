package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-campaign-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は各サブコマンドが共有する実行時オプションなのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ブランド入力関連 ---
	rootCmd.PersistentFlags().StringArrayVarP(&opts.URLs, "url", "u", nil, "分析対象のブランドURLなのだ。複数指定できるのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.BrandName, "brand", "b", "", "ブランド名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Identity, "identity", "", "ブランドのアイデンティティ（一言紹介）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.BusinessType, "type", "", "ビジネス区分（producto / servicio）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ProductName, "product", "", "主力の製品・サービス名なのだ。")

	// --- 生成結果の入出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputFile, "output-file", "o", "", "保存パス（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.InputFile, "input-file", "", "読み込む生成結果のパス（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.OutputDir, "output-dir", config.DefaultOutputDir, "生成された画像を保存するディレクトリ（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.VideoCaption, "video-caption", "", "公開時に動画へ添えるキャプションなのだ。")

	// --- サーバー・実行制御 ---
	rootCmd.PersistentFlags().StringVar(&opts.ListenAddr, "listen", config.DefaultListenAddr, "APIサーバーの待受アドレスなのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-campaign-go",
		addAppFlags,
		preRunAppE,
		serveCmd,
		analyzeCmd,
		postsCmd,
		videoCmd,
		publishCmd,
	)
}
