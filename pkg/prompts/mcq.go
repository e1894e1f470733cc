package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-campaign-kit/pkg/domain"
)

// BuildMCQContext はウィザード状態から MCQ 生成用の文脈ブロックを組み立てます。
// 入力済みの項目だけを載せ、URL 分析は洞察と検出色まで展開します。
func BuildMCQContext(data domain.WizardData) string {
	var parts []string

	if data.Inputs.Identity != "" {
		parts = append(parts, fmt.Sprintf("IDENTIDAD DEL NEGOCIO: %s", data.Inputs.Identity))
	}
	if data.Inputs.Type != "" {
		parts = append(parts, fmt.Sprintf("TIPO: %s", data.Inputs.Type.Label()))
	}
	if data.Inputs.ProductName != "" {
		parts = append(parts, fmt.Sprintf("NOMBRE DEL PRODUCTO/SERVICIO: %s", data.Inputs.ProductName))
	}

	if len(data.AgentResponses.URLAnalyses) > 0 {
		parts = append(parts, "\n=== ANÁLISIS DE URLs ===")
		for idx, analysis := range data.AgentResponses.URLAnalyses {
			parts = append(parts, fmt.Sprintf("\nURL %d: %s", idx+1, analysis.URL))
			if analysis.Summary != "" {
				parts = append(parts, fmt.Sprintf("Resumen: %s", analysis.Summary))
			}
			if len(analysis.Insights) > 0 {
				parts = append(parts, "Insights:")
				for _, insight := range analysis.Insights {
					parts = append(parts, fmt.Sprintf("- [%s] %s: %s", insight.Type, insight.Label, insight.Value))
				}
			}
			if len(analysis.ConcreteProducts) > 0 {
				parts = append(parts, fmt.Sprintf("Productos: %s", strings.Join(domain.NamedItemNames(analysis.ConcreteProducts), ", ")))
			}
			if len(analysis.ConcreteServices) > 0 {
				parts = append(parts, fmt.Sprintf("Servicios: %s", strings.Join(domain.NamedItemNames(analysis.ConcreteServices), ", ")))
			}
			if analysis.PrimaryColor != "" || analysis.SecondaryColor != "" {
				parts = append(parts, fmt.Sprintf("Colores de marca: %s, %s",
					orDefault(analysis.PrimaryColor, "N/A"), orDefault(analysis.SecondaryColor, "N/A")))
			}
		}
	}

	return strings.Join(parts, "\n")
}

// BuildMCQPrompt は MCQ 生成のユーザープロンプト全体を構築します。
// 汎用ヘッダーの禁止と、この事業に固有のヘッダーを作る指示を必ず含めます。
func BuildMCQPrompt(data domain.WizardData) string {
	return fmt.Sprintf(`Genera las 3 preguntas MCQ contextualizadas basándote en la siguiente información del negocio:

%s

⚠️ IMPORTANTE: Cada header/título (campo "text") debe ser ÚNICO y específico para este negocio. NUNCA uses headers genéricos como "Digital Pro", "Cálido Humano", "Acción Ya", "Moderno", "Natural", "Directo", "Rápido", "Medio", "Lento", "Alta", "Media", "Cero".

En su lugar, crea headers contextuales que reflejen la identidad única de este negocio específico. Analiza su tipo de negocio, productos/servicios, público objetivo y estilo de comunicación para generar headers que realmente capturen su esencia.

Usa toda esta información para hacer las preguntas y opciones específicas y relevantes para este negocio en particular. Cada opción debe explicar por qué funciona para SU negocio específico.`,
		BuildMCQContext(data))
}
