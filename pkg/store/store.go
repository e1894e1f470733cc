// Package store は、キャンペーンウィザードのセッション状態を保持する
// インメモリストアを提供します。すべての操作は並行安全で、状態を変更する
// 操作は必ず Metadata.UpdatedAt を現在時刻に更新します。
package store

import (
	"sync"
	"time"

	"github.com/shouni/go-campaign-kit/pkg/domain"
)

// Store は 1 セッション分のウィザード状態です。
// 読み取りはスナップショット（コピー）を返し、内部状態への参照は漏らしません。
type Store struct {
	mu   sync.RWMutex
	data domain.WizardData
	now  func() time.Time
}

// New は空のウィザード状態を作成します。
func New() *Store {
	return newStore(time.Now)
}

func newStore(now func() time.Time) *Store {
	s := &Store{now: now}
	t := s.now()
	s.data.Metadata = domain.Metadata{CreatedAt: t, UpdatedAt: t}
	return s
}

// touch は状態変更の印として UpdatedAt を進めます。ロック保持中に呼びます。
func (s *Store) touch() {
	s.data.Metadata.UpdatedAt = s.now()
}

// Snapshot は現在の状態の深いコピーを返します。
func (s *Store) Snapshot() domain.WizardData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneData(s.data)
}

// Metadata は現在のメタデータを返します。
func (s *Store) Metadata() domain.Metadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Metadata
}

// SetCurrentStep はウィザードの現在ステップを記録します。
func (s *Store) SetCurrentStep(step int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Metadata.CurrentStep = step
	s.touch()
}

// Inputs はユーザー入力のコピーを返します。
func (s *Store) Inputs() domain.UserInputs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in := s.data.Inputs
	in.URLs = append([]string(nil), in.URLs...)
	return in
}

// SetInputs はゼロ値でないフィールドだけを上書きする部分更新です。
func (s *Store) SetInputs(patch domain.UserInputs) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Name != "" {
		s.data.Inputs.Name = patch.Name
	}
	if patch.Identity != "" {
		s.data.Inputs.Identity = patch.Identity
	}
	if patch.URLs != nil {
		s.data.Inputs.URLs = append([]string(nil), patch.URLs...)
	}
	if patch.Type != "" {
		s.data.Inputs.Type = patch.Type
	}
	if patch.ProductName != "" {
		s.data.Inputs.ProductName = patch.ProductName
	}
	s.touch()
}

// AgentResponses は生成成果物全体のコピーを返します。
func (s *Store) AgentResponses() domain.AgentResponses {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneResponses(s.data.AgentResponses)
}

// SetMCQQuestions は MCQ 質問セットを置き換えます。
func (s *Store) SetMCQQuestions(questions []domain.MCQQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AgentResponses.MCQQuestions = cloneQuestions(questions)
	s.touch()
}

// SetMCQAnswer は質問への回答を記録します。
func (s *Store) SetMCQAnswer(questionID, optionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.AgentResponses.MCQAnswers == nil {
		s.data.AgentResponses.MCQAnswers = make(map[string]string)
	}
	s.data.AgentResponses.MCQAnswers[questionID] = optionID
	s.touch()
}

// RemoveMCQAnswer は回答を取り消します。
func (s *Store) RemoveMCQAnswer(questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data.AgentResponses.MCQAnswers, questionID)
	s.touch()
}

// SetVideoPrompt はストリーミング生成が完了した動画プロンプトを保存します。
func (s *Store) SetVideoPrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AgentResponses.VideoPrompt = prompt
	s.touch()
}

// SetGeneratedPosts は投稿生成結果を保存します。
func (s *Store) SetGeneratedPosts(posts []domain.GeneratedPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AgentResponses.GeneratedPosts = append([]domain.GeneratedPost(nil), posts...)
	s.touch()
}

// SetVideoResult は生成済み動画の URL を保存します。
func (s *Store) SetVideoResult(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AgentResponses.VideoResult = url
	s.touch()
}

// AddURLAnalysis は分析結果を追加します。同一の正規化 URL が既に
// 存在する場合はその場で置き換えます。
func (s *Store) AddURLAnalysis(analysis domain.URLAnalysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.CanonicalURL(analysis.URL)
	for i := range s.data.AgentResponses.URLAnalyses {
		if domain.CanonicalURL(s.data.AgentResponses.URLAnalyses[i].URL) == key {
			s.data.AgentResponses.URLAnalyses[i] = analysis
			s.touch()
			return
		}
	}
	s.data.AgentResponses.URLAnalyses = append(s.data.AgentResponses.URLAnalyses, analysis)
	s.touch()
}

// UpdateURLAnalysis は URL で特定した分析結果に部分更新を適用します。
// 対象が見つかった場合のみ true を返します。
func (s *Store) UpdateURLAnalysis(url string, apply func(*domain.URLAnalysis)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.CanonicalURL(url)
	for i := range s.data.AgentResponses.URLAnalyses {
		if domain.CanonicalURL(s.data.AgentResponses.URLAnalyses[i].URL) == key {
			apply(&s.data.AgentResponses.URLAnalyses[i])
			s.touch()
			return true
		}
	}
	return false
}

// RemoveURLAnalysis は URL で特定した分析結果を取り除きます。
func (s *Store) RemoveURLAnalysis(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.CanonicalURL(url)
	analyses := s.data.AgentResponses.URLAnalyses[:0]
	for _, a := range s.data.AgentResponses.URLAnalyses {
		if domain.CanonicalURL(a.URL) != key {
			analyses = append(analyses, a)
		}
	}
	s.data.AgentResponses.URLAnalyses = analyses
	s.touch()
}

// PushSelection は選択スタックに 1 件追加します。
func (s *Store) PushSelection(item domain.SelectionStackItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AgentResponses.SelectionStack = append(s.data.AgentResponses.SelectionStack, item)
	s.touch()
}

// SelectionStack は選択スタックのコピーを返します。
func (s *Store) SelectionStack() []domain.SelectionStackItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.SelectionStackItem(nil), s.data.AgentResponses.SelectionStack...)
}

// TruncateSelectionStack は先頭 n 件だけを残します。やり直し操作で
// 以降の選択を巻き戻すために使います。
func (s *Store) TruncateSelectionStack(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n < len(s.data.AgentResponses.SelectionStack) {
		s.data.AgentResponses.SelectionStack = s.data.AgentResponses.SelectionStack[:n]
	}
	s.touch()
}

// ClearSelectionStack は選択スタックを空にします。
func (s *Store) ClearSelectionStack() {
	s.TruncateSelectionStack(0)
}

// ResetInputs はユーザー入力だけを初期化します。
func (s *Store) ResetInputs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Inputs = domain.UserInputs{}
	s.touch()
}

// ResetAgentResponses は生成成果物だけを初期化します。
func (s *Store) ResetAgentResponses() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AgentResponses = domain.AgentResponses{}
	s.touch()
}

// Reset はセッション全体を初期状態に戻します。CreatedAt も再設定されます。
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now()
	s.data = domain.WizardData{Metadata: domain.Metadata{CreatedAt: t, UpdatedAt: t}}
}

func cloneData(d domain.WizardData) domain.WizardData {
	out := d
	out.Inputs.URLs = append([]string(nil), d.Inputs.URLs...)
	out.AgentResponses = cloneResponses(d.AgentResponses)
	return out
}

func cloneResponses(r domain.AgentResponses) domain.AgentResponses {
	out := r
	out.URLAnalyses = append([]domain.URLAnalysis(nil), r.URLAnalyses...)
	out.MCQQuestions = cloneQuestions(r.MCQQuestions)
	out.SelectionStack = append([]domain.SelectionStackItem(nil), r.SelectionStack...)
	out.GeneratedPosts = append([]domain.GeneratedPost(nil), r.GeneratedPosts...)
	if r.MCQAnswers != nil {
		out.MCQAnswers = make(map[string]string, len(r.MCQAnswers))
		for k, v := range r.MCQAnswers {
			out.MCQAnswers[k] = v
		}
	}
	return out
}

func cloneQuestions(qs []domain.MCQQuestion) []domain.MCQQuestion {
	if qs == nil {
		return nil
	}
	out := make([]domain.MCQQuestion, len(qs))
	for i, q := range qs {
		out[i] = q
		out[i].Options = append([]domain.MCQOption(nil), q.Options...)
	}
	return out
}
