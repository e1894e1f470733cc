package generator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shouni/go-campaign-kit/pkg/domain"
)

// fakeTextGen は決まった応答を返すテスト用 TextGenerator なのだ。
type fakeTextGen struct {
	mu       sync.Mutex
	response string
	err      error
	delay    time.Duration
	calls    int
	prompts  []string
}

func (f *fakeTextGen) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.response, f.err
}

func validQuestionsJSON() string {
	q := func(id string, optIDs [3]string, labels [3]string) string {
		var opts []string
		for i := 0; i < 3; i++ {
			opts = append(opts, `{"id":"`+optIDs[i]+`","text":"`+labels[i]+`","description":"d","sensation":"s","usefulFor":"u","howItLooks":"h","whyItWorks":"w","color":"#FF0080","icon":"Sparkles"}`)
		}
		return `{"id":"` + id + `","question":"q","options":[` + strings.Join(opts, ",") + `]}`
	}
	return `{"questions":[` +
		q(domain.QuestionVisualStyle, [3]string{"moderno", "natural", "directo"}, [3]string{"Precisión", "Cálido", "Urgente"}) + "," +
		q(domain.QuestionVisualRhythm, [3]string{"rapido", "medio", "lento"}, [3]string{"Turbo", "Fluido", "Sereno"}) + "," +
		q(domain.QuestionHumanPresence, [3]string{"alta", "media", "cero"}, [3]string{"Rostros", "Mixto", "Espacios"}) +
		`]}`
}

func TestMCQGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("正常な応答から3問を得るのだ", func(t *testing.T) {
		gen := NewMCQGenerator(&fakeTextGen{response: "前置きなのだ\n" + validQuestionsJSON()})
		questions, err := gen.Generate(ctx, domain.WizardData{})
		if err != nil {
			t.Fatalf("生成に失敗したのだ: %v", err)
		}
		if len(questions) != 3 {
			t.Fatalf("3問のはずが %d 問なのだ", len(questions))
		}
		if questions[0].Options[0].Text != "Precisión" {
			t.Errorf("ラベルが違うのだ: %+v", questions[0].Options[0])
		}
	})

	t.Run("モデルエラーはそのまま伝播するのだ", func(t *testing.T) {
		gen := NewMCQGenerator(&fakeTextGen{err: errors.New("quota exceeded")})
		if _, err := gen.Generate(ctx, domain.WizardData{}); err == nil {
			t.Error("エラーになるはずなのだ")
		}
	})
}

func TestMCQGenerator_GenerateShared(t *testing.T) {
	fake := &fakeTextGen{response: validQuestionsJSON(), delay: 50 * time.Millisecond}
	gen := NewMCQGenerator(fake)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := gen.GenerateShared(ctx, "session-1", domain.WizardData{}); err != nil {
				t.Errorf("共有生成に失敗したのだ: %v", err)
			}
		}()
	}
	wg.Wait()

	fake.mu.Lock()
	calls := fake.calls
	fake.mu.Unlock()
	if calls >= 8 {
		t.Errorf("同時リクエストが合流していないのだ: %d 回呼ばれた", calls)
	}
}

func TestValidateQuestionSet(t *testing.T) {
	base := func() []domain.MCQQuestion {
		mk := func(id string, vocab []string, labels []string) domain.MCQQuestion {
			q := domain.MCQQuestion{ID: id, Question: "q"}
			for i, v := range vocab {
				q.Options = append(q.Options, domain.MCQOption{ID: v, Text: labels[i]})
			}
			return q
		}
		return []domain.MCQQuestion{
			mk(domain.QuestionVisualStyle, []string{"moderno", "natural", "directo"}, []string{"Precisión", "Cálido", "Urgente"}),
			mk(domain.QuestionVisualRhythm, []string{"rapido", "medio", "lento"}, []string{"Turbo", "Fluido", "Sereno"}),
			mk(domain.QuestionHumanPresence, []string{"alta", "media", "cero"}, []string{"Rostros", "Mixto", "Espacios"}),
		}
	}

	t.Run("正しいセットは通るのだ", func(t *testing.T) {
		if err := ValidateQuestionSet(base()); err != nil {
			t.Errorf("通るはずなのだ: %v", err)
		}
	})

	t.Run("汎用ヘッダーは拒否するのだ", func(t *testing.T) {
		qs := base()
		qs[0].Options[0].Text = "Moderno"
		if err := ValidateQuestionSet(qs); err == nil {
			t.Error("禁止リストで弾くはずなのだ")
		}
	})

	t.Run("ラベル重複は拒否するのだ", func(t *testing.T) {
		qs := base()
		qs[1].Options[0].Text = "Precisión"
		if err := ValidateQuestionSet(qs); err == nil {
			t.Error("重複で弾くはずなのだ")
		}
	})

	t.Run("語彙外の選択肢IDは拒否するのだ", func(t *testing.T) {
		qs := base()
		qs[2].Options[2].ID = "nunca"
		if err := ValidateQuestionSet(qs); err == nil {
			t.Error("語彙違反で弾くはずなのだ")
		}
	})

	t.Run("質問数の不足は拒否するのだ", func(t *testing.T) {
		if err := ValidateQuestionSet(base()[:2]); err == nil {
			t.Error("2問では弾くはずなのだ")
		}
	})
}
