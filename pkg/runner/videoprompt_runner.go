package runner

import (
	"context"
	"fmt"

	"github.com/shouni/go-campaign-kit/pkg/generator"
	"github.com/shouni/go-campaign-kit/pkg/prompts"
	"github.com/shouni/go-campaign-kit/pkg/store"
)

// streamChunkRunes は RunStream が onDelta へ渡す 1 チャンクの文字数です。
const streamChunkRunes = 48

// VideoPromptRunner は動画プロンプト生成ステップの実行実体なのだ。
type VideoPromptRunner struct {
	gen   *generator.VideoPromptGenerator
	store *store.Store
}

// NewVideoPromptRunner は依存関係を注入して初期化します。
func NewVideoPromptRunner(gen *generator.VideoPromptGenerator, st *store.Store) (*VideoPromptRunner, error) {
	if gen == nil {
		return nil, fmt.Errorf("VideoPromptGeneratorが指定されていません")
	}
	if st == nil {
		return nil, fmt.Errorf("Storeが指定されていません")
	}
	return &VideoPromptRunner{gen: gen, store: st}, nil
}

// Run は現在のウィザード状態から動画プロンプトを生成して保存します。
func (vr *VideoPromptRunner) Run(ctx context.Context) (string, error) {
	data := vr.store.Snapshot()

	prompt, err := vr.gen.Generate(ctx, data)
	if err != nil {
		return "", fmt.Errorf("動画プロンプトの生成に失敗しました: %w", err)
	}

	vr.store.SetVideoPrompt(prompt)
	return prompt, nil
}

// RunStream は Run と同じ生成を行い、結果を文字単位のチャンクで
// onDelta へ逐次渡します。onDelta がエラーを返した時点で打ち切ります。
func (vr *VideoPromptRunner) RunStream(ctx context.Context, onDelta func(string) error) (string, error) {
	prompt, err := vr.Run(ctx)
	if err != nil {
		return "", err
	}

	runes := []rune(prompt)
	for i := 0; i < len(runes); i += streamChunkRunes {
		if err := ctx.Err(); err != nil {
			return prompt, err
		}
		end := i + streamChunkRunes
		if end > len(runes) {
			end = len(runes)
		}
		if err := onDelta(string(runes[i:end])); err != nil {
			return prompt, fmt.Errorf("ストリーム送出に失敗しました: %w", err)
		}
	}
	return prompt, nil
}

// RunImagePrompt はコンテンツマトリクスとデザインブリーフから
// ベース画像用のプロンプトを生成します。
func (vr *VideoPromptRunner) RunImagePrompt(ctx context.Context) (string, error) {
	data := vr.store.Snapshot()

	matrix := prompts.DefaultContentMatrix(data.Inputs.ProductName)
	brief := prompts.BuildDesignBrief(data)

	prompt, err := vr.gen.GenerateImagePrompt(ctx, matrix, brief)
	if err != nil {
		return "", fmt.Errorf("画像プロンプトの生成に失敗しました: %w", err)
	}
	return prompt, nil
}
