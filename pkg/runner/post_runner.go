package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/generator"
	"github.com/shouni/go-campaign-kit/pkg/parser"
	"github.com/shouni/go-campaign-kit/pkg/prompts"
	"github.com/shouni/go-campaign-kit/pkg/render"
	"github.com/shouni/go-campaign-kit/pkg/store"
)

// defaultRateInterval は描画リクエストの最小間隔です。
const defaultRateInterval = 2 * time.Second

// ReferenceChecker は参照画像の妥当性検査を提供します。
type ReferenceChecker interface {
	Validate(ctx context.Context, url string) (string, bool)
	ValidateAll(ctx context.Context, candidates []string) []string
}

// PostRunner は投稿コンセプト生成と画像描画のステップの実行実体なのだ。
// コンセプト生成の失敗はワークフロー全体の失敗だが、個別画像の描画失敗は
// その投稿の ImageError に記録するだけで他の投稿を道連れにしません。
type PostRunner struct {
	concepts *generator.ConceptGenerator
	gateway  render.Gateway
	refs     ReferenceChecker
	store    *store.Store
	limiter  *rate.Limiter
}

// NewPostRunner は依存関係を注入して初期化します。rateInterval が 0 の
// 場合は既定の間隔を使います。
func NewPostRunner(
	concepts *generator.ConceptGenerator,
	gateway render.Gateway,
	refs ReferenceChecker,
	st *store.Store,
	rateInterval time.Duration,
) (*PostRunner, error) {
	if concepts == nil {
		return nil, fmt.Errorf("ConceptGeneratorが指定されていません")
	}
	if gateway == nil {
		return nil, fmt.Errorf("Gatewayが指定されていません")
	}
	if refs == nil {
		return nil, fmt.Errorf("ReferenceCheckerが指定されていません")
	}
	if st == nil {
		return nil, fmt.Errorf("Storeが指定されていません")
	}
	if rateInterval <= 0 {
		rateInterval = defaultRateInterval
	}
	return &PostRunner{
		concepts: concepts,
		gateway:  gateway,
		refs:     refs,
		store:    st,
		limiter:  rate.NewLimiter(rate.Every(rateInterval), 3),
	}, nil
}

// Run はキャンペーンブリーフから 3 つの投稿コンセプトを生成し、
// それぞれの画像を並行して描画します。
func (pr *PostRunner) Run(ctx context.Context) (domain.PostGenerationResult, error) {
	data := pr.store.Snapshot()

	analysis := data.FirstAnalysis()
	if analysis == nil {
		err := fmt.Errorf("URL分析がまだ実行されていません")
		return domain.PostGenerationResult{Success: false, Error: err.Error()}, err
	}

	brief := prompts.BuildCampaignBrief(prompts.NewBriefInput(data))

	slog.Info("PostRunner: コンセプト生成を開始します", "brand", data.Inputs.Name)
	posts, err := pr.concepts.Generate(ctx, brief)
	if err != nil {
		err = fmt.Errorf("コンセプトの生成に失敗しました: %w", err)
		return domain.PostGenerationResult{Success: false, Error: err.Error()}, err
	}

	refs := pr.collectReferences(ctx, *analysis)
	pr.renderAll(ctx, posts, refs)

	pr.store.SetGeneratedPosts(posts)
	return domain.PostGenerationResult{Success: true, Posts: posts}, nil
}

// collectReferences はロゴと最初のブランド画像を検査し、通過した
// 最終 URL だけを参照画像として返します。不正な候補は黙って捨てます。
func (pr *PostRunner) collectReferences(ctx context.Context, analysis domain.URLAnalysis) []string {
	var candidates []string
	if analysis.LogoURL != "" {
		candidates = append(candidates, analysis.LogoURL)
	}
	if len(analysis.Images) > 0 {
		candidates = append(candidates, analysis.Images[0])
	}

	valid := pr.refs.ValidateAll(ctx, candidates)
	slog.Info("PostRunner: 参照画像を検査しました", "candidates", len(candidates), "valid", len(valid))
	return valid
}

// renderAll は投稿ごとの画像を並行描画します。レートリミッターで送出間隔を
// 保ちつつ、失敗は該当投稿の ImageError に記録して続行します。
func (pr *PostRunner) renderAll(ctx context.Context, posts []domain.GeneratedPost, refs []string) {
	g, gctx := errgroup.WithContext(ctx)

	for i := range posts {
		i := i
		g.Go(func() error {
			if err := pr.limiter.Wait(gctx); err != nil {
				posts[i].ImageError = err.Error()
				return nil
			}

			req := render.ImageRequest{
				Prompt:          parser.StripOuterQuotes(posts[i].Description),
				Ratio:           render.RatioSquare,
				ReferenceImages: refs,
			}
			url, err := pr.gateway.TextToImage(gctx, req)
			if err != nil {
				slog.Warn("PostRunner: 画像描画に失敗しました", "post", posts[i].ID, "error", err)
				posts[i].ImageError = err.Error()
				return nil
			}

			posts[i].ImageURL = url
			slog.Info("PostRunner: 画像描画が完了しました", "post", posts[i].ID, "url", url)
			return nil
		})
	}

	// 各ゴルーチンは常に nil を返すため、ここでエラーは起こりません。
	_ = g.Wait()
}
