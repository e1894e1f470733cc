package insight

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/shouni/go-campaign-kit/pkg/domain"
)

type fakeTextGen struct {
	mu       sync.Mutex
	response string
	calls    int
}

func (f *fakeTextGen) Generate(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.response, nil
}

func newTestAnalyzer(pageText, response string) (*GeminiAnalyzer, *fakeTextGen) {
	fake := &fakeTextGen{response: response}
	return &GeminiAnalyzer{
		fetch: func(_ context.Context, _ string) (string, error) {
			return pageText, nil
		},
		textGen: fake,
		cache:   cache.New(5*time.Minute, 15*time.Minute),
	}, fake
}

func TestGeminiAnalyzer_Analyze(t *testing.T) {
	ctx := context.Background()
	response := `{
		"summary": "Cafetería artesanal.",
		"insights": [{"type": "tone", "label": "Tono", "value": "cálido"}],
		"concreteProducts": [{"name": "Blend Andino", "icon": "Coffee", "color": "#8B4513"}],
		"concreteServices": [{"name": "Tostado a pedido"}],
		"colors": ["#111111", "#222222", "#333333"],
		"images": ["https://a/1.jpg", "", "https://a/1.jpg", "https://a/2.jpg"]
	}`

	t.Run("正規化URLと後処理が適用されるのだ", func(t *testing.T) {
		analyzer, _ := newTestAnalyzer("texto de la página", response)
		got, err := analyzer.Analyze(ctx, "llaima.ai/")
		if err != nil {
			t.Fatalf("分析に失敗したのだ: %v", err)
		}
		if got.URL != "https://llaima.ai" {
			t.Errorf("URLが正規化されていないのだ: %s", got.URL)
		}
		if got.PrimaryColor != "#111111" || got.SecondaryColor != "#222222" {
			t.Errorf("色のフォールバックが効いていないのだ: %+v", got)
		}
		if !reflect.DeepEqual(got.Colors, []string{"#111111", "#222222"}) {
			t.Errorf("colorsは2色までのはずなのだ: %v", got.Colors)
		}
		if !reflect.DeepEqual(got.Images, []string{"https://a/1.jpg", "https://a/2.jpg"}) {
			t.Errorf("画像の重複排除が効いていないのだ: %v", got.Images)
		}
	})

	t.Run("製品とサービスはオブジェクト形式で受けるのだ", func(t *testing.T) {
		analyzer, _ := newTestAnalyzer("texto", response)
		got, err := analyzer.Analyze(ctx, "llaima.ai")
		if err != nil {
			t.Fatalf("分析に失敗したのだ: %v", err)
		}
		wantProducts := []domain.NamedItem{{Name: "Blend Andino", Icon: "Coffee", Color: "#8B4513"}}
		if !reflect.DeepEqual(got.ConcreteProducts, wantProducts) {
			t.Errorf("concreteProductsが展開されていないのだ: %+v", got.ConcreteProducts)
		}
		wantServices := []domain.NamedItem{{Name: "Tostado a pedido"}}
		if !reflect.DeepEqual(got.ConcreteServices, wantServices) {
			t.Errorf("concreteServicesが展開されていないのだ: %+v", got.ConcreteServices)
		}
	})

	t.Run("2回目はキャッシュから返すのだ", func(t *testing.T) {
		analyzer, fake := newTestAnalyzer("texto", response)
		if _, err := analyzer.Analyze(ctx, "llaima.ai"); err != nil {
			t.Fatalf("1回目に失敗したのだ: %v", err)
		}
		if _, err := analyzer.Analyze(ctx, "https://llaima.ai/"); err != nil {
			t.Fatalf("2回目に失敗したのだ: %v", err)
		}
		if fake.calls != 1 {
			t.Errorf("モデル呼び出しは1回のはずなのだ: %d", fake.calls)
		}
	})

	t.Run("空URLはエラーなのだ", func(t *testing.T) {
		analyzer, _ := newTestAnalyzer("", response)
		if _, err := analyzer.Analyze(ctx, "   "); err == nil {
			t.Error("エラーになるはずなのだ")
		}
	})
}

func TestNormalize_InsightCap(t *testing.T) {
	a := domain.URLAnalysis{}
	for i := 0; i < 14; i++ {
		a.Insights = append(a.Insights, domain.Insight{Type: domain.InsightInfo, Label: "l", Value: "v"})
	}
	Normalize(&a)
	if len(a.Insights) != 10 {
		t.Errorf("insightsは10件までのはずなのだ: %d", len(a.Insights))
	}
}
