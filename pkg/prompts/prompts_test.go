package prompts

import (
	"strings"
	"testing"

	"github.com/shouni/go-campaign-kit/pkg/domain"
)

func sampleWizardData() domain.WizardData {
	return domain.WizardData{
		Inputs: domain.UserInputs{
			Name:        "Llaima Café",
			Identity:    "café de especialidad en Temuco",
			Type:        domain.TypeProduct,
			ProductName: "Blend Andino",
		},
		AgentResponses: domain.AgentResponses{
			URLAnalyses: []domain.URLAnalysis{{
				URL:            "https://llaima.ai",
				Summary:        "Cafetería artesanal con tostado propio.",
				PrimaryColor:   "#8B4513",
				SecondaryColor: "#F5DEB3",
				Colors:         []string{"#2F4F4F"},
				LogoURL:        "https://llaima.ai/logo.png",
				Images:         []string{"https://llaima.ai/hero.jpg", "https://llaima.ai/beans.jpg"},
				ConcreteProducts: []domain.NamedItem{
					{Name: "Blend Andino", Icon: "Coffee", Color: "#8B4513"},
					{Name: "Cold Brew"},
				},
				ConcreteServices: []domain.NamedItem{{Name: "Tostado a pedido"}},
				Insights: []domain.Insight{
					{Type: domain.InsightTargetAudience, Label: "Audiencia", Value: "profesionales jóvenes"},
					{Type: domain.InsightTone, Label: "Tono", Value: "cálido y cercano"},
				},
			}},
			MCQQuestions: []domain.MCQQuestion{
				{
					ID: domain.QuestionVisualStyle,
					Options: []domain.MCQOption{
						{ID: "natural", Text: "Origen Andino", Color: "#00FF88", HowItLooks: "luz cálida, manos reales"},
					},
				},
			},
			MCQAnswers: map[string]string{domain.QuestionVisualStyle: "natural"},
			SelectionStack: []domain.SelectionStackItem{
				{ID: domain.SelectionBrandLogo, Text: "logo"},
				{ID: "natural", Text: "Origen Andino", Color: "#00FF88"},
			},
		},
	}
}

func TestBuildCampaignBrief(t *testing.T) {
	brief := BuildCampaignBrief(NewBriefInput(sampleWizardData()))

	t.Run("ブランド色と製品名が必ず載るのだ", func(t *testing.T) {
		for _, want := range []string{"#8B4513", "#F5DEB3", "#2F4F4F", "Blend Andino", "Llaima Café"} {
			if !strings.Contains(brief, want) {
				t.Errorf("ブリーフに %q が無いのだ", want)
			}
		}
	})

	t.Run("ロゴがあればロゴ指示が入るのだ", func(t *testing.T) {
		if !strings.Contains(brief, "https://llaima.ai/logo.png") {
			t.Error("ロゴURLが載っていないのだ")
		}
		if !strings.Contains(brief, "El logo debe aparecer visiblemente") {
			t.Error("ロゴ指示が無いのだ")
		}
	})

	t.Run("疑似エントリは選択文脈から除外されるのだ", func(t *testing.T) {
		if !strings.Contains(brief, "Origen Andino (#00FF88)") {
			t.Error("通常の選択が文脈に入っていないのだ")
		}
		if strings.Contains(brief, "logo (") {
			t.Error("brand-logoの疑似エントリが混ざっているのだ")
		}
	})

	t.Run("回答済みMCQの詳細が展開されるのだ", func(t *testing.T) {
		if !strings.Contains(brief, "luz cálida, manos reales") {
			t.Error("選択肢のhowItLooksが展開されていないのだ")
		}
	})
}

func TestBuildMCQPrompt(t *testing.T) {
	prompt := BuildMCQPrompt(sampleWizardData())

	if !strings.Contains(prompt, "IDENTIDAD DEL NEGOCIO: café de especialidad en Temuco") {
		t.Error("事業アイデンティティが文脈に無いのだ")
	}
	if !strings.Contains(prompt, "[target_audience] Audiencia: profesionales jóvenes") {
		t.Error("insightが展開されていないのだ")
	}
	if !strings.Contains(prompt, "Productos: Blend Andino, Cold Brew") {
		t.Error("製品は名前だけを連結するはずなのだ")
	}
	if !strings.Contains(prompt, "Servicios: Tostado a pedido") {
		t.Error("サービスは名前だけを連結するはずなのだ")
	}
	if !strings.Contains(prompt, `NUNCA uses headers genéricos`) {
		t.Error("汎用ヘッダー禁止の警告が無いのだ")
	}
}

func TestBuildVideoPrompt(t *testing.T) {
	prompt, err := BuildVideoPrompt(sampleWizardData())
	if err != nil {
		t.Fatalf("構築に失敗したのだ: %v", err)
	}

	if !strings.HasPrefix(prompt, "MATRIZ DE CONTENIDO:\n") {
		t.Errorf("構成表ブロックで始まっていないのだ: %q", prompt[:40])
	}
	for _, phase := range []string{"GANCHO", "CONTEXTO", "VALOR/DEMO", "CTA FINAL"} {
		if !strings.Contains(prompt, phase) {
			t.Errorf("フェーズ %s が無いのだ", phase)
		}
	}
	if !strings.Contains(prompt, "Blend Andino") {
		t.Error("製品名がアクションに織り込まれていないのだ")
	}
	if !strings.Contains(prompt, "BRIEF DE DISEÑO:") {
		t.Error("デザインブリーフが付いていないのだ")
	}
	if !strings.Contains(prompt, `"audiencia": "profesionales jóvenes"`) {
		t.Error("audienciaのinsightがブリーフに入っていないのだ")
	}
}

func TestBuildVoicePrompt(t *testing.T) {
	long := strings.Repeat("a", 400)
	prompt := BuildVoicePrompt(long)
	if strings.Contains(prompt, strings.Repeat("a", 301)) {
		t.Error("文脈が300文字に切り詰められていないのだ")
	}
	if !strings.Contains(prompt, "MUY BREVE (1 frase)") {
		t.Error("1文制約が無いのだ")
	}
}
