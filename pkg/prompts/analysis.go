package prompts

import (
	"fmt"
	"strings"
)

// ページ本文が長すぎる場合の切り詰め上限です。
const maxPageTextRunes = 24000

// BuildAnalysisPrompt はブランド URL 分析のユーザープロンプトを構築します。
// 抽出済みのページ本文を添え、長すぎる場合は先頭から切り詰めます。
func BuildAnalysisPrompt(url, pageText string) string {
	text := strings.TrimSpace(pageText)
	if runes := []rune(text); len(runes) > maxPageTextRunes {
		text = string(runes[:maxPageTextRunes])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analiza la siguiente URL y extrae insights estructurados: %s\n\n", url)
	if text != "" {
		fmt.Fprintf(&b, "CONTENIDO EXTRAÍDO DE LA PÁGINA:\n%s\n\n", text)
	}
	b.WriteString("Proporciona insights categorizados según el formato indicado.")
	return b.String()
}

// Join はシステム指示とユーザープロンプトを 1 リクエスト用に連結します。
func Join(instruction, userPrompt string) string {
	return instruction + "\n\n---\n\n" + userPrompt
}
