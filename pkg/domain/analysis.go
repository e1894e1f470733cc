package domain

import "strings"

// InsightType は、ブランド分析で抽出する洞察のカテゴリです。
type InsightType string

const (
	InsightStyle          InsightType = "style"
	InsightInfo           InsightType = "info"
	InsightProducts       InsightType = "products"
	InsightServices       InsightType = "services"
	InsightTargetAudience InsightType = "target_audience"
	InsightTone           InsightType = "tone"
	InsightPricing        InsightType = "pricing"
	InsightFeatures       InsightType = "features"
	InsightIntegrations   InsightType = "integrations"
	InsightTechStack      InsightType = "tech_stack"
)

// Confidence は洞察の確信度ラベルです。
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Insight は、分析対象ページから抽出した個別の洞察です。
type Insight struct {
	Type       InsightType `json:"type"`
	Label      string      `json:"label"`
	Value      string      `json:"value"`
	Confidence Confidence  `json:"confidence,omitempty"`
}

// NamedItem は、分析で検出した具体的な製品・サービスの 1 件です。
// Icon と Color は任意で、表示側の装飾に使われます。
type NamedItem struct {
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// NamedItemNames は NamedItem 列から名前だけを取り出します。
func NamedItemNames(items []NamedItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		names = append(names, item.Name)
	}
	return names
}

// URLAnalysis は、1 つのブランド URL の分析結果です。
type URLAnalysis struct {
	URL              string      `json:"url"`
	Summary          string      `json:"summary,omitempty"`
	Insights         []Insight   `json:"insights,omitempty"`
	ConcreteProducts []NamedItem `json:"concreteProducts,omitempty"`
	ConcreteServices []NamedItem `json:"concreteServices,omitempty"`
	Colors           []string    `json:"colors,omitempty"`
	PrimaryColor     string      `json:"primaryColor,omitempty"`
	SecondaryColor   string      `json:"secondaryColor,omitempty"`
	LogoURL          string      `json:"logoUrl,omitempty"`
	Images           []string    `json:"images,omitempty"`
}

// BrandPalette は primary / secondary / その他の検出色を先頭から重ねた
// パレットを返します。空要素は除外し、最大 5 色に丸めます。
func (a *URLAnalysis) BrandPalette() []string {
	candidates := make([]string, 0, len(a.Colors)+2)
	candidates = append(candidates, a.PrimaryColor, a.SecondaryColor)
	candidates = append(candidates, a.Colors...)

	palette := make([]string, 0, 5)
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			continue
		}
		palette = append(palette, c)
		if len(palette) == 5 {
			break
		}
	}
	return palette
}

// CanonicalURL は比較用に URL を正規化します。スキームが無ければ https を
// 補い、末尾のスラッシュを取り除きます。空白のみの入力は空文字を返します。
func CanonicalURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "https://" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}
