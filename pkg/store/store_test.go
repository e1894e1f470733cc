package store

import (
	"sync"
	"testing"
	"time"

	"github.com/shouni/go-campaign-kit/pkg/domain"
)

// テスト用に単調増加する時計を仕込むのだ。
func newClockedStore() (*Store, *time.Time) {
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newStore(func() time.Time {
		current = current.Add(time.Second)
		return current
	})
	return s, &current
}

func TestStore_TouchOnEveryMutation(t *testing.T) {
	s, _ := newClockedStore()

	before := s.Metadata().UpdatedAt
	s.SetInputs(domain.UserInputs{Name: "Llaima Café"})
	after := s.Metadata().UpdatedAt

	if !after.After(before) {
		t.Fatalf("SetInputs後にUpdatedAtが進んでいないのだ: %v -> %v", before, after)
	}

	before = after
	s.SetMCQAnswer(domain.QuestionVisualStyle, "moderno")
	if got := s.Metadata().UpdatedAt; !got.After(before) {
		t.Errorf("SetMCQAnswer後にUpdatedAtが進んでいないのだ")
	}
}

func TestStore_SetInputsIsPartial(t *testing.T) {
	s := New()
	s.SetInputs(domain.UserInputs{Name: "Llaima", Identity: "café de especialidad"})
	s.SetInputs(domain.UserInputs{ProductName: "Blend Andino", Type: domain.TypeProduct})

	in := s.Inputs()
	if in.Name != "Llaima" || in.Identity != "café de especialidad" {
		t.Errorf("部分更新が既存フィールドを消してしまったのだ: %+v", in)
	}
	if in.ProductName != "Blend Andino" || in.Type != domain.TypeProduct {
		t.Errorf("新しいフィールドが反映されていないのだ: %+v", in)
	}
}

func TestStore_URLAnalysisLifecycle(t *testing.T) {
	s := New()

	s.AddURLAnalysis(domain.URLAnalysis{URL: "https://llaima.ai/", Summary: "v1"})

	t.Run("正規化URLが同じなら置き換えなのだ", func(t *testing.T) {
		s.AddURLAnalysis(domain.URLAnalysis{URL: "llaima.ai", Summary: "v2"})
		analyses := s.AgentResponses().URLAnalyses
		if len(analyses) != 1 || analyses[0].Summary != "v2" {
			t.Fatalf("置き換えになっていないのだ: %+v", analyses)
		}
	})

	t.Run("部分更新が適用されるのだ", func(t *testing.T) {
		ok := s.UpdateURLAnalysis("https://llaima.ai", func(a *domain.URLAnalysis) {
			a.PrimaryColor = "#ff5500"
		})
		if !ok {
			t.Fatal("対象が見つからなかったのだ")
		}
		if got := s.AgentResponses().URLAnalyses[0].PrimaryColor; got != "#ff5500" {
			t.Errorf("色が反映されていないのだ: %s", got)
		}
	})

	t.Run("削除できるのだ", func(t *testing.T) {
		s.RemoveURLAnalysis("llaima.ai/")
		if got := s.AgentResponses().URLAnalyses; len(got) != 0 {
			t.Errorf("削除されていないのだ: %+v", got)
		}
	})
}

func TestStore_SelectionStackTruncate(t *testing.T) {
	s := New()
	s.PushSelection(domain.SelectionStackItem{ID: domain.SelectionBrandLogo})
	s.PushSelection(domain.SelectionStackItem{ID: "moderno"})
	s.PushSelection(domain.SelectionStackItem{ID: "rapido"})

	s.TruncateSelectionStack(2)

	stack := s.SelectionStack()
	if len(stack) != 2 || stack[1].ID != "moderno" {
		t.Fatalf("巻き戻しが正しくないのだ: %+v", stack)
	}
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := New()
	s.SetGeneratedPosts([]domain.GeneratedPost{{ID: 1, Caption: "hola"}})

	snap := s.Snapshot()
	snap.AgentResponses.GeneratedPosts[0].Caption = "mutado"

	if got := s.AgentResponses().GeneratedPosts[0].Caption; got != "hola" {
		t.Errorf("スナップショット経由で内部状態が汚れたのだ: %s", got)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetMCQAnswer(domain.QuestionVisualRhythm, "medio")
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	if got := s.AgentResponses().MCQAnswers[domain.QuestionVisualRhythm]; got != "medio" {
		t.Errorf("並行書き込み後の値が不正なのだ: %s", got)
	}
}

func TestStore_Reset(t *testing.T) {
	s, _ := newClockedStore()
	created := s.Metadata().CreatedAt

	s.SetInputs(domain.UserInputs{Name: "x"})
	s.SetVideoPrompt("prompt")
	s.Reset()

	data := s.Snapshot()
	if data.Inputs.Name != "" || data.AgentResponses.VideoPrompt != "" {
		t.Errorf("Resetで消えていないのだ: %+v", data)
	}
	if !data.Metadata.CreatedAt.After(created) {
		t.Errorf("ResetはCreatedAtを再設定するはずなのだ")
	}
}
