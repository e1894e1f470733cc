package generator

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shouni/go-campaign-kit/pkg/prompts"
)

// VoiceScriptGenerator は、動画プロンプトの文脈から 1 文のスペイン語
// ナレーション台本を生成します。台本は任意の付加要素なので、生成の失敗や
// モデルの拒否応答は空文字に落とし、エラーにはしません。
type VoiceScriptGenerator struct {
	textGen TextGenerator
}

// NewVoiceScriptGenerator は VoiceScriptGenerator を初期化します。
func NewVoiceScriptGenerator(textGen TextGenerator) *VoiceScriptGenerator {
	return &VoiceScriptGenerator{textGen: textGen}
}

// Generate はナレーション台本を返します。使えない応答は空文字です。
func (g *VoiceScriptGenerator) Generate(ctx context.Context, videoPrompt string) string {
	raw, err := g.textGen.Generate(ctx, prompts.BuildVoicePrompt(videoPrompt))
	if err != nil {
		slog.Warn("VoiceScriptGenerator: 台本生成に失敗したため音声なしで続行します", "error", err)
		return ""
	}

	script := strings.TrimSpace(strings.NewReplacer(`"`, "", "'", "").Replace(raw))

	lower := strings.ToLower(script)
	if strings.Contains(lower, "lo siento") || strings.Contains(lower, "no puedo") {
		slog.Warn("VoiceScriptGenerator: モデルが拒否したため台本を破棄します")
		return ""
	}
	return script
}
