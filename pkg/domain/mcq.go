package domain

// ウィザードが扱う 3 つの固定質問 ID です。
const (
	QuestionVisualStyle   = "visual-style"
	QuestionVisualRhythm  = "visual-rhythm"
	QuestionHumanPresence = "human-presence"
)

// 質問ごとの固定選択肢 ID 語彙です。ラベルは生成のたびに変わりますが、
// ID はこの語彙から外れてはなりません。
var QuestionOptionIDs = map[string][]string{
	QuestionVisualStyle:   {"moderno", "natural", "directo"},
	QuestionVisualRhythm:  {"rapido", "medio", "lento"},
	QuestionHumanPresence: {"alta", "media", "cero"},
}

// MCQOption は、選択式質問の 1 選択肢です。Text は 15 文字以内の
// ユニークなヘッダーで、Color / Icon は UI 表示用の属性です。
type MCQOption struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description"`
	Sensation   string `json:"sensation"`
	UsefulFor   string `json:"usefulFor"`
	HowItLooks  string `json:"howItLooks"`
	WhyItWorks  string `json:"whyItWorks"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// MCQQuestion は、固定 ID を持つ 3 択質問です。
type MCQQuestion struct {
	ID       string      `json:"id"`
	Question string      `json:"question"`
	Options  []MCQOption `json:"options"`
}

// Option は選択肢 ID から選択肢を引きます。見つからなければ nil です。
func (q *MCQQuestion) Option(optionID string) *MCQOption {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}

// 選択スタックの疑似 ID です。ブランドロゴと初回選択はユーザーの
// MCQ 回答ではないため、ブリーフ構築時に除外されます。
const (
	SelectionBrandLogo = "brand-logo"
	SelectionFirstPick = "first-pick"
)

// SelectionStackItem は、ユーザーが選んだ視覚要素の履歴エントリです。
type SelectionStackItem struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// IsPseudo は MCQ 回答由来ではない疑似エントリかどうかを返します。
func (s SelectionStackItem) IsPseudo() bool {
	return s.ID == SelectionBrandLogo || s.ID == SelectionFirstPick
}
