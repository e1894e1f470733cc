package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/generator"
	"github.com/shouni/go-campaign-kit/pkg/store"
)

// MCQRunner は選択式質問の生成ステップの実行実体なのだ。
// 同一入力に対する並行リクエストは生成器側の singleflight で 1 回に束ねます。
type MCQRunner struct {
	gen   *generator.MCQGenerator
	store *store.Store
}

// NewMCQRunner は依存関係を注入して初期化します。
func NewMCQRunner(gen *generator.MCQGenerator, st *store.Store) (*MCQRunner, error) {
	if gen == nil {
		return nil, fmt.Errorf("MCQGeneratorが指定されていません")
	}
	if st == nil {
		return nil, fmt.Errorf("Storeが指定されていません")
	}
	return &MCQRunner{gen: gen, store: st}, nil
}

// Run は現在のウィザード状態から 3 問の質問セットを生成して保存します。
func (mr *MCQRunner) Run(ctx context.Context) ([]domain.MCQQuestion, error) {
	data := mr.store.Snapshot()

	questions, err := mr.gen.GenerateShared(ctx, sharedKey(data), data)
	if err != nil {
		return nil, fmt.Errorf("質問セットの生成に失敗しました: %w", err)
	}

	mr.store.SetMCQQuestions(questions)
	return questions, nil
}

// sharedKey は singleflight の合流キーです。ブランド名と分析済み URL が
// 同じなら同一の生成要求とみなします。
func sharedKey(data domain.WizardData) string {
	urls := make([]string, 0, len(data.AgentResponses.URLAnalyses))
	for _, a := range data.AgentResponses.URLAnalyses {
		urls = append(urls, domain.CanonicalURL(a.URL))
	}
	return data.Inputs.Name + "|" + strings.Join(urls, ",")
}
