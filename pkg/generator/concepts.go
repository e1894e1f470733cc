package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/parser"
	"github.com/shouni/go-campaign-kit/pkg/prompts"
)

// ConceptGenerator は、ブランドブリーフから 3 つの投稿コンセプト
// （英語の画像プロンプトとスペイン語キャプション）を生成します。
type ConceptGenerator struct {
	textGen TextGenerator
}

// NewConceptGenerator は ConceptGenerator を初期化します。
func NewConceptGenerator(textGen TextGenerator) *ConceptGenerator {
	return &ConceptGenerator{textGen: textGen}
}

// Generate はブリーフを送信し、ID:1..ID:3 のコンセプトをパースして返します。
func (g *ConceptGenerator) Generate(ctx context.Context, brief string) ([]domain.GeneratedPost, error) {
	prompt := prompts.Join(prompts.InstructionCampaignVisualizer, brief)

	slog.Info("ConceptGenerator: 投稿コンセプトを生成します")
	raw, err := g.textGen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("コンセプト生成に失敗しました: %w", err)
	}

	posts, err := parser.ParseConcepts(raw)
	if err != nil {
		return nil, fmt.Errorf("コンセプト応答の解析に失敗しました: %w", err)
	}
	return posts, nil
}
