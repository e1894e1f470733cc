package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shouni/go-campaign-kit/pkg/domain"
)

// ContentPhase は縦型動画の 1 フェーズの演出指示です。
type ContentPhase struct {
	Phase        string `json:"phase"`
	TimeRange    string `json:"timeRange"`
	Action       string `json:"action"`
	Improvements string `json:"improvements"`
}

// ContentMatrix は 8 秒の縦型動画を 4 フェーズに分解した構成表です。
type ContentMatrix struct {
	Phases []ContentPhase `json:"phases"`
}

// DefaultContentMatrix は製品名を織り込んだ標準の 4 フェーズ構成を返します。
func DefaultContentMatrix(productName string) ContentMatrix {
	subject := strings.TrimSpace(productName)
	if subject == "" {
		subject = "el producto/servicio"
	}
	return ContentMatrix{
		Phases: []ContentPhase{
			{
				Phase:        "GANCHO",
				TimeRange:    "0-1s",
				Action:       fmt.Sprintf("Detener el scroll con un gancho visual relacionado con %s", subject),
				Improvements: "Fast Zoom/Glitch Effect, SFX disruptivo",
			},
			{
				Phase:        "CONTEXTO",
				TimeRange:    "1-3s",
				Action:       fmt.Sprintf("Introducir el problema o necesidad que resuelve %s", subject),
				Improvements: "Subtítulos con palabras clave",
			},
			{
				Phase:        "VALOR/DEMO",
				TimeRange:    "3-6s",
				Action:       fmt.Sprintf("Mostrar cómo %s resuelve el problema", subject),
				Improvements: "CTA constante en 70% de opacidad",
			},
			{
				Phase:        "CTA FINAL",
				TimeRange:    "6-8s",
				Action:       "Inducir acción (presionar WhatsApp, comprar, etc.)",
				Improvements: "CTA visual fuerte, urgencia si aplica",
			},
		},
	}
}

// BuildDesignBrief はウィザード状態から動画プロンプト用のデザインブリーフを
// 作ります。値が無いキーは載せません。
func BuildDesignBrief(data domain.WizardData) map[string]any {
	brief := make(map[string]any)

	if data.Inputs.Identity != "" {
		brief["negocio"] = data.Inputs.Identity
	}
	if data.Inputs.Name != "" {
		brief["marca"] = data.Inputs.Name
	}
	if data.Inputs.Type != "" {
		brief["tipo"] = data.Inputs.Type.Label()
	}
	if data.Inputs.ProductName != "" {
		brief["productoServicio"] = data.Inputs.ProductName
	}

	if analysis := data.FirstAnalysis(); analysis != nil {
		var colores []string
		for _, c := range append([]string{analysis.PrimaryColor, analysis.SecondaryColor}, analysis.Colors...) {
			if c != "" {
				colores = append(colores, c)
			}
		}
		if len(colores) > 0 {
			brief["colores"] = colores
		}
		if analysis.Summary != "" {
			brief["resumen"] = analysis.Summary
		}
		for _, insight := range analysis.Insights {
			switch insight.Type {
			case domain.InsightTargetAudience:
				if _, ok := brief["audiencia"]; !ok {
					brief["audiencia"] = insight.Value
				}
			case domain.InsightTone:
				if _, ok := brief["tono"]; !ok {
					brief["tono"] = insight.Value
				}
			}
		}
	}

	if len(data.AgentResponses.MCQAnswers) > 0 {
		brief["preferencias"] = data.AgentResponses.MCQAnswers
	}

	return brief
}

// BuildVideoPrompt はウィザード状態から動画プロンプト生成のユーザー
// プロンプトを構築します。構成表とデザインブリーフを整形済み JSON で渡します。
func BuildVideoPrompt(data domain.WizardData) (string, error) {
	matrix := DefaultContentMatrix(data.Inputs.ProductName)
	brief := BuildDesignBrief(data)
	if len(brief) == 0 {
		return BuildVideoPromptFromMatrix(matrix, nil, "")
	}
	return BuildVideoPromptFromMatrix(matrix, brief, "")
}

// BuildVideoPromptFromMatrix は構成表と任意のブリーフ・画像説明から
// ユーザープロンプトを構築します。外部から与えられた構成表にも対応します。
func BuildVideoPromptFromMatrix(matrix any, designBrief any, imageDescription string) (string, error) {
	matrixJSON, err := json.MarshalIndent(matrix, "", "  ")
	if err != nil {
		return "", fmt.Errorf("構成表のJSON整形に失敗しました: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MATRIZ DE CONTENIDO:\n%s", matrixJSON)

	if designBrief != nil {
		briefJSON, err := json.MarshalIndent(designBrief, "", "  ")
		if err != nil {
			return "", fmt.Errorf("デザインブリーフのJSON整形に失敗しました: %w", err)
		}
		fmt.Fprintf(&b, "\n\nBRIEF DE DISEÑO:\n%s", briefJSON)
	}

	if imageDescription != "" {
		fmt.Fprintf(&b, "\n\nDESCRIPCIÓN DE LA IMAGEN:\n%s", imageDescription)
	}

	return b.String(), nil
}

// BuildImagePrompt は構成表から動画のベース画像プロンプト生成用の
// ユーザープロンプトを構築します。
func BuildImagePrompt(matrix any, designBrief any) (string, error) {
	prompt, err := BuildVideoPromptFromMatrix(matrix, designBrief, "")
	if err != nil {
		return "", err
	}
	return prompt + "\n\nGenera una imagen base versátil que funcione para todo el video, considerando todas las fases de la matriz.", nil
}

// BuildVoicePrompt は動画プロンプトの冒頭から 1 文のナレーション台本を
// 依頼するプロンプトを構築します。文脈は先頭 300 文字に切り詰めます。
func BuildVoicePrompt(videoPrompt string) string {
	runes := []rune(videoPrompt)
	if len(runes) > 300 {
		runes = runes[:300]
	}
	context := string(runes)
	return fmt.Sprintf(`Escribe un guion de voz en off MUY BREVE (1 frase) para un video comercial.
Debe ser inspirador y profesional.

Contexto visual: "%s..."

Solo devuelve el texto del guion. Nada más.`, context)
}
