package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/generator"
	"github.com/shouni/go-campaign-kit/pkg/render"
	"github.com/shouni/go-campaign-kit/pkg/store"
)

const (
	// videoPromptSuffix は描画ゲートウェイへ渡す直前に必ず付ける様式指示です。
	videoPromptSuffix = " . Cinematic style, high quality, clean visual, no text overlay, no typography. Follow the action described exactly."
	// maxVideoPromptRunes はサフィックス込みのプロンプト上限文字数です。
	maxVideoPromptRunes = 1000
)

// VideoRunner は動画生成ステップの実行実体なのだ。ナレーション台本は
// ベストエフォートで、取得できなくても動画生成は続行します。
type VideoRunner struct {
	voice   *generator.VoiceScriptGenerator
	gateway render.Gateway
	refs    ReferenceChecker
	store   *store.Store
}

// NewVideoRunner は依存関係を注入して初期化します。
func NewVideoRunner(
	voice *generator.VoiceScriptGenerator,
	gateway render.Gateway,
	refs ReferenceChecker,
	st *store.Store,
) (*VideoRunner, error) {
	if voice == nil {
		return nil, fmt.Errorf("VoiceScriptGeneratorが指定されていません")
	}
	if gateway == nil {
		return nil, fmt.Errorf("Gatewayが指定されていません")
	}
	if refs == nil {
		return nil, fmt.Errorf("ReferenceCheckerが指定されていません")
	}
	if st == nil {
		return nil, fmt.Errorf("Storeが指定されていません")
	}
	return &VideoRunner{voice: voice, gateway: gateway, refs: refs, store: st}, nil
}

// Run は保存済みの動画プロンプトから縦型動画を生成し、生成物 URL を
// ストアに記録します。
func (vr *VideoRunner) Run(ctx context.Context) (domain.VideoGenerationResult, error) {
	data := vr.store.Snapshot()

	prompt := strings.TrimSpace(data.AgentResponses.VideoPrompt)
	if prompt == "" {
		err := fmt.Errorf("動画プロンプトがまだ生成されていません")
		return domain.VideoGenerationResult{Success: false, Error: err.Error()}, err
	}

	promptImage := vr.resolvePromptImage(ctx, data)
	voiceScript := vr.voice.Generate(ctx, prompt)
	if voiceScript == "" {
		slog.Warn("VideoRunner: ナレーション台本なしで続行します")
	}

	req := render.VideoRequest{
		Prompt:      finalVideoPrompt(prompt),
		Ratio:       render.RatioVertical,
		PromptImage: promptImage,
		VoiceScript: voiceScript,
	}

	slog.Info("VideoRunner: 動画生成を開始します", "prompt_image", promptImage != "", "voice", voiceScript != "")
	url, err := vr.gateway.TextToVideo(ctx, req)
	if err != nil {
		err = fmt.Errorf("動画の生成に失敗しました: %w", err)
		return domain.VideoGenerationResult{Success: false, Error: err.Error()}, err
	}

	vr.store.SetVideoResult(url)
	return domain.VideoGenerationResult{Success: true, Output: []string{url}}, nil
}

// resolvePromptImage は最初の描画済み投稿画像を検査し、通過した場合だけ
// その最終 URL をベース画像として返します。
func (vr *VideoRunner) resolvePromptImage(ctx context.Context, data domain.WizardData) string {
	for _, post := range data.AgentResponses.GeneratedPosts {
		if post.ImageURL == "" {
			continue
		}
		if finalURL, ok := vr.refs.Validate(ctx, post.ImageURL); ok {
			return finalURL
		}
		slog.Warn("VideoRunner: ベース画像が検査を通りませんでした", "url", post.ImageURL)
		return ""
	}
	return ""
}

// finalVideoPrompt はプロンプトを上限に収まるよう切り詰め、様式指示の
// サフィックスを必ず付けて返します。
func finalVideoPrompt(prompt string) string {
	limit := maxVideoPromptRunes - len([]rune(videoPromptSuffix))
	runes := []rune(prompt)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + videoPromptSuffix
}
