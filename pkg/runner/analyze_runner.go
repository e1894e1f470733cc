// Package runner は、ウィザード各ステップの実行実体を提供します。
// 各ランナーは生成器とストアを束ね、1 ステップ分のワークフローを実行します。
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/insight"
	"github.com/shouni/go-campaign-kit/pkg/store"
)

// AnalyzeRunner はブランド URL の分析ステップの実行実体なのだ。
type AnalyzeRunner struct {
	analyzer insight.Analyzer
	store    *store.Store
}

// NewAnalyzeRunner は依存関係を注入して初期化します。
func NewAnalyzeRunner(analyzer insight.Analyzer, st *store.Store) (*AnalyzeRunner, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("Analyzerが指定されていません")
	}
	if st == nil {
		return nil, fmt.Errorf("Storeが指定されていません")
	}
	return &AnalyzeRunner{analyzer: analyzer, store: st}, nil
}

// Run は URL 群から最初の有効な 1 件を分析し、結果をストアに記録します。
// 空白だけの URL は入力段階で取り除きます。
func (ar *AnalyzeRunner) Run(ctx context.Context, urls []string) (*domain.URLAnalysis, error) {
	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		if strings.TrimSpace(u) != "" {
			cleaned = append(cleaned, strings.TrimSpace(u))
		}
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("分析対象のURLが1つもありません")
	}

	ar.store.SetInputs(domain.UserInputs{URLs: cleaned})

	slog.Info("AnalyzeRunner: URL分析を開始します", "url", cleaned[0])
	analysis, err := ar.analyzer.Analyze(ctx, cleaned[0])
	if err != nil {
		return nil, fmt.Errorf("URL分析に失敗しました: %w", err)
	}

	ar.store.AddURLAnalysis(*analysis)
	slog.Info("AnalyzeRunner: URL分析が完了しました",
		"url", analysis.URL,
		"insights", len(analysis.Insights),
		"images", len(analysis.Images),
	)
	return analysis, nil
}
