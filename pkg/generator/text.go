// Package generator は、ウィザード各ステージのテキスト生成を担う
// ジェネレーター群を提供します。各ジェネレーターはシステム指示と
// ユーザープロンプトを束ねてモデルに送り、応答を防御的にパースします。
package generator

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// TextGenerator は、プロンプトからテキストを 1 回生成する契約です。
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiText は gemini クライアントを TextGenerator に適合させます。
type GeminiText struct {
	aiClient gemini.GenerativeModel
	model    string
}

// NewGeminiText は使用モデルを固定した TextGenerator を作成します。
func NewGeminiText(aiClient gemini.GenerativeModel, model string) (*GeminiText, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("AIクライアントが指定されていません")
	}
	if model == "" {
		return nil, fmt.Errorf("モデル名が指定されていません")
	}
	return &GeminiText{aiClient: aiClient, model: model}, nil
}

// Generate はプロンプトを送信し、応答テキストを返します。
func (g *GeminiText) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.aiClient.GenerateContent(ctx, prompt, g.model)
	if err != nil {
		return "", fmt.Errorf("テキスト生成に失敗しました: %w", err)
	}
	return resp.Text, nil
}
