package domain

import (
	"encoding/json"
	"time"
)

// ProductServiceType は、ビジネスが販売する対象の区分です。
type ProductServiceType string

const (
	// TypeProduct は物理的・デジタルな製品を表します。
	TypeProduct ProductServiceType = "producto"
	// TypeService はサービス提供型のビジネスを表します。
	TypeService ProductServiceType = "servicio"
)

// Label は区分の表示名（スペイン語）を返します。
func (t ProductServiceType) Label() string {
	if t == TypeProduct {
		return "Producto"
	}
	return "Servicio"
}

// UserInputs は、ウィザードの各ステップでユーザーが入力する値です。
type UserInputs struct {
	Name        string             `json:"name,omitempty"`
	Identity    string             `json:"identity,omitempty"`
	URLs        []string           `json:"urls,omitempty"`
	Type        ProductServiceType `json:"type,omitempty"`
	ProductName string             `json:"productName,omitempty"`
}

// Metadata は、ウィザードセッションのライフサイクル情報です。
// すべての状態変更は UpdatedAt を更新します。
type Metadata struct {
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CurrentStep int       `json:"currentStep"`
}

// AgentResponses は、各生成ステージの成果物を型付きフィールドで保持します。
// 既知のステージはすべて固有フィールドを持ち、将来の拡張は Extra に
// 生 JSON のまま退避させます。
type AgentResponses struct {
	URLAnalyses    []URLAnalysis        `json:"urlAnalyses,omitempty"`
	MCQQuestions   []MCQQuestion        `json:"mcqQuestions,omitempty"`
	MCQAnswers     map[string]string    `json:"mcqAnswers,omitempty"`
	SelectionStack []SelectionStackItem `json:"selectionStack,omitempty"`
	VideoPrompt    string               `json:"videoPrompt,omitempty"`
	GeneratedPosts []GeneratedPost      `json:"generatedPosts,omitempty"`
	VideoResult    string               `json:"videoResult,omitempty"`

	Extra map[string]json.RawMessage `json:"extra,omitempty"`
}

// WizardData は、キャンペーンウィザード全体の状態スナップショットです。
type WizardData struct {
	Inputs         UserInputs     `json:"inputs"`
	AgentResponses AgentResponses `json:"agentResponses"`
	Metadata       Metadata       `json:"metadata"`
}

// FirstAnalysis は最初の URL 分析結果を返します。未分析なら nil です。
func (w *WizardData) FirstAnalysis() *URLAnalysis {
	if len(w.AgentResponses.URLAnalyses) == 0 {
		return nil
	}
	return &w.AgentResponses.URLAnalyses[0]
}

// MCQAnswerOption は、質問 ID に対する回答済み選択肢を解決します。
// 未回答、または該当選択肢が存在しない場合は nil を返します。
func (w *WizardData) MCQAnswerOption(questionID string) *MCQOption {
	optionID, ok := w.AgentResponses.MCQAnswers[questionID]
	if !ok || optionID == "" {
		return nil
	}
	for i := range w.AgentResponses.MCQQuestions {
		q := &w.AgentResponses.MCQQuestions[i]
		if q.ID != questionID {
			continue
		}
		return q.Option(optionID)
	}
	return nil
}
