package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/prompts"
)

// VideoPromptGenerator は、構成表とデザインブリーフから Veo 向けの
// 動画プロンプト（英語 1 段落）を生成します。
type VideoPromptGenerator struct {
	textGen TextGenerator
}

// NewVideoPromptGenerator は VideoPromptGenerator を初期化します。
func NewVideoPromptGenerator(textGen TextGenerator) *VideoPromptGenerator {
	return &VideoPromptGenerator{textGen: textGen}
}

// Generate はウィザード状態から動画プロンプトの全文を生成します。
func (g *VideoPromptGenerator) Generate(ctx context.Context, data domain.WizardData) (string, error) {
	userPrompt, err := prompts.BuildVideoPrompt(data)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, prompts.InstructionVideoPrompt, userPrompt)
}

// GenerateFromMatrix は外部から与えられた構成表とブリーフで生成します。
func (g *VideoPromptGenerator) GenerateFromMatrix(ctx context.Context, matrix, designBrief any, imageDescription string) (string, error) {
	userPrompt, err := prompts.BuildVideoPromptFromMatrix(matrix, designBrief, imageDescription)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, prompts.InstructionVideoPrompt, userPrompt)
}

// GenerateImagePrompt は構成表から動画のベース画像プロンプトを生成します。
func (g *VideoPromptGenerator) GenerateImagePrompt(ctx context.Context, matrix, designBrief any) (string, error) {
	userPrompt, err := prompts.BuildImagePrompt(matrix, designBrief)
	if err != nil {
		return "", err
	}
	return g.generate(ctx, prompts.InstructionImagePrompt, userPrompt)
}

func (g *VideoPromptGenerator) generate(ctx context.Context, instruction, userPrompt string) (string, error) {
	slog.Info("VideoPromptGenerator: プロンプトを生成します")
	text, err := g.textGen.Generate(ctx, prompts.Join(instruction, userPrompt))
	if err != nil {
		return "", fmt.Errorf("動画プロンプト生成に失敗しました: %w", err)
	}
	return text, nil
}
