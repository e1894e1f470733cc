package domain

import (
	"reflect"
	"testing"
)

func TestCanonicalURL(t *testing.T) {
	t.Run("スキーム補完と末尾スラッシュ除去が効くのだ", func(t *testing.T) {
		cases := map[string]string{
			"example.com":           "https://example.com",
			"https://example.com/":  "https://example.com",
			"http://example.com///": "http://example.com",
			"  https://a.jp/shop ":  "https://a.jp/shop",
			"   ":                   "",
		}
		for in, want := range cases {
			if got := CanonicalURL(in); got != want {
				t.Errorf("CanonicalURL(%q) = %q, 期待 %q", in, got, want)
			}
		}
	})
}

func TestURLAnalysis_BrandPalette(t *testing.T) {
	t.Run("primaryとsecondaryが先頭に来て5色で打ち切るのだ", func(t *testing.T) {
		a := URLAnalysis{
			PrimaryColor:   "#112233",
			SecondaryColor: "#445566",
			Colors:         []string{"#778899", "#aabbcc", "#ddeeff", "#000000"},
		}
		want := []string{"#112233", "#445566", "#778899", "#aabbcc", "#ddeeff"}
		if got := a.BrandPalette(); !reflect.DeepEqual(got, want) {
			t.Errorf("パレットが違うのだ: %v", got)
		}
	})

	t.Run("空の色は飛ばすのだ", func(t *testing.T) {
		a := URLAnalysis{SecondaryColor: "#445566", Colors: []string{"", "#778899"}}
		want := []string{"#445566", "#778899"}
		if got := a.BrandPalette(); !reflect.DeepEqual(got, want) {
			t.Errorf("パレットが違うのだ: %v", got)
		}
	})
}

func TestWizardData_MCQAnswerOption(t *testing.T) {
	data := WizardData{
		AgentResponses: AgentResponses{
			MCQQuestions: []MCQQuestion{
				{
					ID: QuestionVisualStyle,
					Options: []MCQOption{
						{ID: "moderno", Text: "Tech Nítido"},
						{ID: "natural", Text: "Hogar Cálido"},
					},
				},
			},
			MCQAnswers: map[string]string{QuestionVisualStyle: "natural"},
		},
	}

	t.Run("回答済みの選択肢を解決できるのだ", func(t *testing.T) {
		opt := data.MCQAnswerOption(QuestionVisualStyle)
		if opt == nil || opt.Text != "Hogar Cálido" {
			t.Fatalf("選択肢の解決に失敗したのだ: %+v", opt)
		}
	})

	t.Run("未回答の質問はnilなのだ", func(t *testing.T) {
		if opt := data.MCQAnswerOption(QuestionVisualRhythm); opt != nil {
			t.Errorf("nilのはずが %+v なのだ", opt)
		}
	})
}

func TestSelectionStackItem_IsPseudo(t *testing.T) {
	if !(SelectionStackItem{ID: SelectionBrandLogo}).IsPseudo() {
		t.Error("brand-logo は疑似エントリのはずなのだ")
	}
	if (SelectionStackItem{ID: "moderno"}).IsPseudo() {
		t.Error("通常の選択は疑似エントリではないのだ")
	}
}
