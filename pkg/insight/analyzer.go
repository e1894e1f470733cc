// Package insight は、ブランド URL の分析を提供します。ページ本文を抽出し、
// モデルに構造化された洞察を生成させ、後処理で応答を正規化します。
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-web-exact/v2/pkg/extract"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/generator"
	"github.com/shouni/go-campaign-kit/pkg/parser"
	"github.com/shouni/go-campaign-kit/pkg/prompts"
)

// 応答の正規化で適用する上限です。
const (
	maxInsights = 10
	maxImages   = 12
	maxColors   = 2
)

// Analyzer は URL からブランド分析を生成する契約です。
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*domain.URLAnalysis, error)
}

// GeminiAnalyzer は本文抽出とモデル生成を組み合わせた Analyzer の実装です。
// 分析結果は正規化 URL をキーに TTL キャッシュへ載せます。
type GeminiAnalyzer struct {
	fetch   func(ctx context.Context, url string) (string, error)
	textGen generator.TextGenerator
	cache   *cache.Cache
}

// NewGeminiAnalyzer は GeminiAnalyzer を初期化します。
func NewGeminiAnalyzer(extractor *extract.Extractor, textGen generator.TextGenerator, ttl time.Duration) (*GeminiAnalyzer, error) {
	if extractor == nil {
		return nil, fmt.Errorf("Extractorが指定されていません")
	}
	if textGen == nil {
		return nil, fmt.Errorf("TextGeneratorが指定されていません")
	}
	return &GeminiAnalyzer{
		fetch: func(ctx context.Context, url string) (string, error) {
			text, _, err := extractor.FetchAndExtractText(ctx, url)
			if err != nil {
				return "", fmt.Errorf("ページ本文の抽出に失敗しました: %w", err)
			}
			return text, nil
		},
		textGen: textGen,
		cache:   cache.New(ttl, ttl*3),
	}, nil
}

// Analyze は URL を正規化し、分析結果を返します。
func (a *GeminiAnalyzer) Analyze(ctx context.Context, rawURL string) (*domain.URLAnalysis, error) {
	url := domain.CanonicalURL(rawURL)
	if url == "" {
		return nil, fmt.Errorf("分析対象のURLが空です")
	}

	if cached, ok := a.cache.Get(url); ok {
		slog.Debug("GeminiAnalyzer: キャッシュ命中", "url", url)
		analysis := cached.(domain.URLAnalysis)
		return &analysis, nil
	}

	slog.Info("GeminiAnalyzer: 本文を抽出します", "url", url)
	pageText, err := a.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	prompt := prompts.Join(prompts.InstructionAnalysis, prompts.BuildAnalysisPrompt(url, pageText))
	raw, err := a.textGen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("URL分析の生成に失敗しました: %w", err)
	}

	var analysis domain.URLAnalysis
	if err := parser.DecodeJSON(raw, &analysis); err != nil {
		return nil, fmt.Errorf("URL分析応答の解析に失敗しました: %w", err)
	}

	analysis.URL = url
	Normalize(&analysis)

	a.cache.Set(url, analysis, cache.DefaultExpiration)
	return &analysis, nil
}

// Normalize は分析結果に上限とフォールバックを適用します。
//   - insights は最大 10 件
//   - colors は最大 2 色、primary/secondary が空なら colors から補完
//   - images は空要素を除き、重複排除して最大 12 件
func Normalize(a *domain.URLAnalysis) {
	if len(a.Insights) > maxInsights {
		a.Insights = a.Insights[:maxInsights]
	}

	if a.PrimaryColor == "" && len(a.Colors) > 0 {
		a.PrimaryColor = a.Colors[0]
	}
	if a.SecondaryColor == "" && len(a.Colors) > 1 {
		a.SecondaryColor = a.Colors[1]
	}
	if len(a.Colors) > maxColors {
		a.Colors = a.Colors[:maxColors]
	}

	seen := make(map[string]struct{}, len(a.Images))
	images := a.Images[:0]
	for _, img := range a.Images {
		if strings.TrimSpace(img) == "" {
			continue
		}
		if _, dup := seen[img]; dup {
			continue
		}
		seen[img] = struct{}{}
		images = append(images, img)
		if len(images) == maxImages {
			break
		}
	}
	a.Images = images
}
