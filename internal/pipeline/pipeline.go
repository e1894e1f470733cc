// Package pipeline は、CLI から呼び出されるウィザード工程の実行経路を提供します。
// 各 Execute 関数は共有コンテキストを初期化し、必要な Runner を順に実行して
// 成果物を JSON として保存します。
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-campaign-kit/internal/builder"
	"github.com/shouni/go-campaign-kit/internal/config"
	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/store"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// ExecuteAnalyze はブランド URL を分析し、結果を JSON として保存するのだ。
func ExecuteAnalyze(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	analyzeRunner, err := appCtx.Manager.BuildAnalyzeRunner()
	if err != nil {
		return fmt.Errorf("AnalyzeRunnerの構築に失敗したのだ: %w", err)
	}

	analysis, err := analyzeRunner.Run(ctx, cfg.Options.URLs)
	if err != nil {
		return err
	}

	outputPath := orDefault(cfg.Options.OutputFile, config.DefaultAnalysisFile)
	if err := writeJSON(ctx, appCtx, outputPath, analysis); err != nil {
		return err
	}

	slog.Info("URL分析が完了したのだ！", "path", outputPath, "insights", len(analysis.Insights))
	return nil
}

// ExecutePosts は分析から投稿コンセプト生成・画像描画までを一気に実行するのだ。
func ExecutePosts(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	if err := runAnalyzeStep(ctx, appCtx, cfg); err != nil {
		return err
	}

	postRunner, err := appCtx.Manager.BuildPostRunner()
	if err != nil {
		return fmt.Errorf("PostRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := postRunner.Run(ctx)
	if err != nil {
		return fmt.Errorf("投稿生成に失敗したのだ: %w", err)
	}

	outputPath := orDefault(cfg.Options.OutputFile, config.DefaultPostsFile)
	if err := writeJSON(ctx, appCtx, outputPath, result); err != nil {
		return err
	}

	slog.Info("投稿生成が完了したのだ！", "path", outputPath, "posts", len(result.Posts))
	return nil
}

// ExecuteVideo は分析、動画プロンプト生成、動画生成までを実行するのだ。
func ExecuteVideo(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	if err := runAnalyzeStep(ctx, appCtx, cfg); err != nil {
		return err
	}

	promptRunner, err := appCtx.Manager.BuildVideoPromptRunner()
	if err != nil {
		return fmt.Errorf("VideoPromptRunnerの構築に失敗したのだ: %w", err)
	}
	prompt, err := promptRunner.Run(ctx)
	if err != nil {
		return err
	}
	slog.Info("動画プロンプトが生成されたのだ", "length", len(prompt))

	videoRunner, err := appCtx.Manager.BuildVideoRunner()
	if err != nil {
		return fmt.Errorf("VideoRunnerの構築に失敗したのだ: %w", err)
	}
	result, err := videoRunner.Run(ctx)
	if err != nil {
		return fmt.Errorf("動画生成に失敗したのだ: %w", err)
	}

	outputPath := orDefault(cfg.Options.OutputFile, config.DefaultVideoFile)
	if err := writeJSON(ctx, appCtx, outputPath, result); err != nil {
		return err
	}

	slog.Info("動画生成が完了したのだ！", "path", outputPath)
	return nil
}

// ExecutePublish は保存済みの投稿生成結果を読み込み、逐次公開するのだ。
func ExecutePublish(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	inputPath := orDefault(cfg.Options.InputFile, config.DefaultPostsFile)
	rc, err := appCtx.Reader.Open(ctx, inputPath)
	if err != nil {
		return fmt.Errorf("投稿ファイル '%s' の読み込みに失敗しました: %w", inputPath, err)
	}
	defer rc.Close()

	var posts domain.PostGenerationResult
	if err := json.NewDecoder(rc).Decode(&posts); err != nil {
		return fmt.Errorf("投稿ファイル '%s' のデコードに失敗しました: %w", inputPath, err)
	}

	st := appCtx.Manager.Store()
	st.SetGeneratedPosts(posts.Posts)
	loadVideoResult(ctx, appCtx, st)

	publishRunner, err := appCtx.Manager.BuildPublishRunner()
	if err != nil {
		return fmt.Errorf("PublishRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := publishRunner.Run(ctx, cfg.Options.VideoCaption)
	if err != nil {
		return fmt.Errorf("公開処理に失敗したのだ: %w", err)
	}

	slog.Info("公開処理が完了したのだ！", "total", result.Total, "completed", result.Completed)
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(config.DefaultHTTPTimeout)

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	manager, err := builder.BuildManager(ctx, cfg, httpClient, reader, writer)
	if err != nil {
		return nil, err
	}
	builder.ApplyBrandInputs(manager, cfg.Options)

	appCtx := builder.NewAppContext(cfg, httpClient, reader, writer, manager)
	return &appCtx, nil
}

// runAnalyzeStep は URL が指定されていれば分析工程を先に実行するのだ。
func runAnalyzeStep(ctx context.Context, appCtx *builder.AppContext, cfg *config.Config) error {
	if len(cfg.Options.URLs) == 0 {
		return fmt.Errorf("分析対象のURLが指定されていません (--url)")
	}

	analyzeRunner, err := appCtx.Manager.BuildAnalyzeRunner()
	if err != nil {
		return fmt.Errorf("AnalyzeRunnerの構築に失敗したのだ: %w", err)
	}
	if _, err := analyzeRunner.Run(ctx, cfg.Options.URLs); err != nil {
		return err
	}
	return nil
}

// loadVideoResult は保存済みの動画生成結果があればストアへ反映するのだ。
// 動画なしの公開も正常系なので、読み込み失敗は警告に留めます。
func loadVideoResult(ctx context.Context, appCtx *builder.AppContext, st *store.Store) {
	rc, err := appCtx.Reader.Open(ctx, config.DefaultVideoFile)
	if err != nil {
		slog.Warn("動画生成結果が見つからないため画像のみ公開するのだ", "path", config.DefaultVideoFile)
		return
	}
	defer rc.Close()

	var video domain.VideoGenerationResult
	if err := json.NewDecoder(rc).Decode(&video); err != nil {
		slog.Warn("動画生成結果のデコードに失敗したのだ", "error", err)
		return
	}
	if video.Success && len(video.Output) > 0 {
		st.SetVideoResult(video.Output[0])
	}
}

func writeJSON(ctx context.Context, appCtx *builder.AppContext, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("JSON整形に失敗しました: %w", err)
	}
	if err := appCtx.Writer.Write(ctx, path, bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("'%s' への保存に失敗しました: %w", path, err)
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
