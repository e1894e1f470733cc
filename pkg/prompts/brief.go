package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-campaign-kit/pkg/domain"
)

// BriefInput は、キャンペーンブリーフの構築に必要なウィザード状態の断面です。
type BriefInput struct {
	BrandName     string
	BrandIdentity string
	Type          domain.ProductServiceType
	ProductName   string
	Summary       string

	Palette        []string
	PrimaryColor   string
	SecondaryColor string
	LogoURL        string
	Images         []string

	StyleOption    *domain.MCQOption
	RhythmOption   *domain.MCQOption
	PresenceOption *domain.MCQOption
	StyleID        string
	RhythmID       string
	PresenceID     string

	SelectionContext string
}

// NewBriefInput はウィザード状態からブリーフ入力を組み立てます。
// 最初の URL 分析と MCQ の回答済み選択肢を解決し、疑似エントリを除いた
// 選択履歴を文脈文字列に畳み込みます。
func NewBriefInput(data domain.WizardData) BriefInput {
	in := BriefInput{
		BrandName:     data.Inputs.Name,
		BrandIdentity: data.Inputs.Identity,
		Type:          data.Inputs.Type,
		ProductName:   data.Inputs.ProductName,
	}

	if analysis := data.FirstAnalysis(); analysis != nil {
		in.Summary = analysis.Summary
		in.Palette = analysis.BrandPalette()
		in.PrimaryColor = analysis.PrimaryColor
		in.SecondaryColor = analysis.SecondaryColor
		in.LogoURL = analysis.LogoURL
		in.Images = analysis.Images
	}

	in.StyleID = data.AgentResponses.MCQAnswers[domain.QuestionVisualStyle]
	in.RhythmID = data.AgentResponses.MCQAnswers[domain.QuestionVisualRhythm]
	in.PresenceID = data.AgentResponses.MCQAnswers[domain.QuestionHumanPresence]
	in.StyleOption = data.MCQAnswerOption(domain.QuestionVisualStyle)
	in.RhythmOption = data.MCQAnswerOption(domain.QuestionVisualRhythm)
	in.PresenceOption = data.MCQAnswerOption(domain.QuestionHumanPresence)

	var selections []string
	for _, item := range data.AgentResponses.SelectionStack {
		if item.IsPseudo() {
			continue
		}
		selections = append(selections, fmt.Sprintf("%s (%s)", item.Text, item.Color))
	}
	in.SelectionContext = strings.Join(selections, ", ")

	return in
}

// ColorPalette はブリーフ掲載用のパレット文字列を返します。
func (in BriefInput) ColorPalette() string {
	if len(in.Palette) == 0 {
		return "No brand colors detected"
	}
	return strings.Join(in.Palette, ", ")
}

const briefSeparator = "═══════════════════════════════════════════════════════════"

// BuildCampaignBrief は投稿コンセプト生成用のブランドブリーフを構築します。
// ブランド色とロゴの使用を必須要件として明示し、クライアントの視覚選択を
// 3 コンセプトの方向性に落とし込みます。
func BuildCampaignBrief(in BriefInput) string {
	var b strings.Builder
	palette := in.ColorPalette()

	b.WriteString("🎨 BRIEF DE MARCA - GENERACIÓN DE CONTENIDO INSTAGRAM POSTS\n\n")

	section(&b, "📌 IDENTIDAD DE MARCA")
	fmt.Fprintf(&b, "**Nombre de la Marca:** %s\n", in.BrandName)
	fmt.Fprintf(&b, "**Identidad del Negocio:** %s\n", in.BrandIdentity)
	fmt.Fprintf(&b, "**Tipo:** %s\n", in.Type.Label())
	fmt.Fprintf(&b, "**Producto/Servicio Principal:** %s\n\n", in.ProductName)
	fmt.Fprintf(&b, "**Resumen del Negocio:**\n%s\n\n", orDefault(in.Summary, "No disponible"))

	section(&b, "🎨 IDENTIDAD VISUAL - COLORES DE MARCA")
	fmt.Fprintf(&b, "**Paleta de Colores de la Marca:**\n%s\n\n", palette)
	fmt.Fprintf(&b, "**Color Primario:** %s\n", orDefault(in.PrimaryColor, "No detectado"))
	fmt.Fprintf(&b, "**Color Secundario:** %s\n\n", orDefault(in.SecondaryColor, "No detectado"))
	b.WriteString("**INSTRUCCIÓN CRÍTICA:** DEBES usar estos colores de marca como BASE FUNDAMENTAL para todas las imágenes generadas. Los colores de marca NO son sugerencias, son REQUISITOS OBLIGATORIOS. Cada imagen debe incorporar estos colores de manera prominente y visible. Si hay múltiples colores, úsalos en combinación armoniosa. Si solo hay un color, úsalo como color dominante con acentos complementarios.\n\n")
	fmt.Fprintf(&b, "**Logo de la Marca:** %s\n", orDefault(in.LogoURL, "No disponible"))
	if in.LogoURL != "" {
		b.WriteString("**INSTRUCCIÓN:** El logo debe aparecer visiblemente en cada post, integrado de manera elegante y profesional.\n")
	}
	b.WriteString("\n")

	section(&b, "✨ ELECCIONES VISUALES DEL CLIENTE")
	writeChoice(&b, "1. ESTILO VISUAL SELECCIONADO", in.StyleOption)
	writeChoice(&b, "2. RITMO VISUAL SELECCIONADO", in.RhythmOption)
	writeChoice(&b, "3. PRESENCIA HUMANA SELECCIONADA", in.PresenceOption)
	fmt.Fprintf(&b, "**Contexto de Selecciones Visuales:**\n%s\n\n", orDefault(in.SelectionContext, "No disponible"))

	section(&b, "🖼️ REFERENCIAS VISUALES DISPONIBLES")
	if len(in.Images) > 0 {
		fmt.Fprintf(&b, "**Imágenes de Referencia:** %d imágenes disponibles\n", len(in.Images))
		fmt.Fprintf(&b, "**Imagen Principal:** %s\n", in.Images[0])
		if len(in.Images) > 1 {
			extra := in.Images[1:]
			if len(extra) > 3 {
				extra = extra[:3]
			}
			fmt.Fprintf(&b, "**Imágenes Adicionales:** %s\n", strings.Join(extra, ", "))
		}
	} else {
		b.WriteString("**Imágenes de Referencia:** No hay imágenes de referencia\n")
	}
	b.WriteString("\n**INSTRUCCIÓN:** Usa estas imágenes como referencia visual para mantener consistencia con el estilo fotográfico, composición, iluminación y estética general de la marca.\n\n")

	section(&b, "📱 REQUISITOS TÉCNICOS")
	b.WriteString("- **Formato:** Instagram Post Cuadrado (1:1, ratio 1024:1024)\n")
	b.WriteString("- **Cantidad:** 3 conceptos distintos y únicos\n")
	b.WriteString("- **Estilo:** Cada concepto debe ser visualmente distinto pero mantener coherencia de marca\n")
	b.WriteString("- **CAPTION:** Cada concepto DEBE incluir un caption profesional en ESPAÑOL que sea atractivo, relevante para la marca y optimizado para Instagram\n\n")

	section(&b, "🎯 INSTRUCCIONES CRÍTICAS DE GENERACIÓN")
	b.WriteString("**OBLIGATORIO - USO DE COLORES DE MARCA:**\n")
	fmt.Fprintf(&b, "1. Los colores de marca (%s) DEBEN ser el elemento visual dominante en cada imagen\n", palette)
	b.WriteString("2. Usa los colores de marca en fondos, acentos, textos, elementos gráficos, y cualquier elemento visual\n")
	b.WriteString("3. Los colores de marca NO son opcionales - son la base de la identidad visual\n\n")

	b.WriteString("**OBLIGATORIO - INTEGRACIÓN DEL LOGO:**\n")
	if in.LogoURL != "" {
		fmt.Fprintf(&b, "1. El logo (%s) DEBE aparecer visiblemente en cada post\n", in.LogoURL)
		b.WriteString("2. Integra el logo de forma elegante, profesional y reconocible\n\n")
	} else {
		b.WriteString("1. No hay logo disponible - enfócate en usar los colores de marca de forma prominente\n\n")
	}

	b.WriteString("**OBLIGATORIO - RESPETO A LAS ELECCIONES VISUALES:**\n")
	fmt.Fprintf(&b, "1. **Estilo Visual %q:** %s\n", choiceLabel(in.StyleOption, in.StyleID), choiceLook(in.StyleOption, "Aplicar el estilo seleccionado"))
	fmt.Fprintf(&b, "2. **Ritmo Visual %q:** %s\n", choiceLabel(in.RhythmOption, in.RhythmID), choiceLook(in.RhythmOption, "Aplicar el ritmo seleccionado"))
	fmt.Fprintf(&b, "3. **Presencia Humana %q:** %s\n\n", choiceLabel(in.PresenceOption, in.PresenceID), choiceLook(in.PresenceOption, "Aplicar la presencia seleccionada"))

	b.WriteString("**OBLIGATORIO - DESTACAR EL PRODUCTO/SERVICIO:**\n")
	fmt.Fprintf(&b, "- El %s %q debe ser el protagonista visual de cada post\n", strings.ToLower(in.Type.Label()), in.ProductName)
	fmt.Fprintf(&b, "- Usa los colores de marca para resaltar %q\n\n", in.ProductName)

	b.WriteString("**OBLIGATORIO - CAPTIONS EN ESPAÑOL:**\n")
	fmt.Fprintf(&b, "- Cada concepto DEBE incluir un caption profesional en ESPAÑOL, atractivo y relevante para la marca %q y el producto/servicio %q\n", in.BrandName, in.ProductName)
	b.WriteString("- Optimizado para engagement en Instagram (puede incluir emojis relevantes, llamados a la acción, hashtags sugeridos)\n\n")

	section(&b, "✨ GENERA 3 CONCEPTOS DISTINTOS QUE:")
	fmt.Fprintf(&b, "1. **Concepto 1:** Enfocado en %s, usando los colores de marca %s como dominante, con %s, ritmo %s\n",
		choiceLabel(in.StyleOption, "el estilo visual seleccionado"),
		paletteAt(in.Palette, 0),
		choiceLabel(in.PresenceOption, "la presencia humana seleccionada"),
		choiceLabel(in.RhythmOption, "seleccionado"))
	fmt.Fprintf(&b, "2. **Concepto 2:** Variación del concepto 1 pero con enfoque diferente en la presentación de %q, manteniendo los colores de marca %s como acento principal\n",
		in.ProductName, paletteAt(in.Palette, 1))
	fmt.Fprintf(&b, "3. **Concepto 3:** Enfoque más %s, destacando %q con los colores de marca en combinación completa\n\n",
		rhythmFlavor(in.RhythmOption), in.ProductName)

	b.WriteString("**RECUERDA:** Cada concepto debe ser ÚNICO visualmente pero mantener la coherencia de marca. Cada concepto debe tener un \"description\" (prompt de imagen en inglés) y un \"caption\" (caption de Instagram en español).\n")

	return b.String()
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n%s\n%s\n\n", briefSeparator, title, briefSeparator)
}

func writeChoice(b *strings.Builder, title string, opt *domain.MCQOption) {
	fmt.Fprintf(b, "**%s:**\n", title)
	if opt == nil {
		b.WriteString("- No seleccionado\n\n")
		return
	}
	fmt.Fprintf(b, "- **Opción Elegida:** %q\n", opt.Text)
	fmt.Fprintf(b, "- **Color Asociado:** %s\n", opt.Color)
	fmt.Fprintf(b, "- **Descripción:** %s\n", orDefault(opt.Description, "N/A"))
	fmt.Fprintf(b, "- **Cómo se ve:** %s\n", orDefault(opt.HowItLooks, "N/A"))
	fmt.Fprintf(b, "- **Por qué funciona:** %s\n", orDefault(opt.WhyItWorks, "N/A"))
	fmt.Fprintf(b, "- **Útil para:** %s\n\n", orDefault(opt.UsefulFor, "N/A"))
}

func choiceLabel(opt *domain.MCQOption, fallback string) string {
	if opt != nil && opt.Text != "" {
		return opt.Text
	}
	return fallback
}

func choiceLook(opt *domain.MCQOption, fallback string) string {
	if opt != nil && opt.HowItLooks != "" {
		return opt.HowItLooks
	}
	return fallback
}

func rhythmFlavor(opt *domain.MCQOption) string {
	if opt != nil {
		switch opt.ID {
		case "rapido":
			return "dinámico y energético"
		case "lento":
			return "sereno y cinematográfico"
		}
	}
	return "equilibrado y profesional"
}

func paletteAt(palette []string, i int) string {
	if i < len(palette) {
		return palette[i]
	}
	if len(palette) > 0 {
		return palette[0]
	}
	return ""
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
