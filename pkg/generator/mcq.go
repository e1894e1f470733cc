package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/parser"
	"github.com/shouni/go-campaign-kit/pkg/prompts"
)

// 再利用されがちな汎用ヘッダーの禁止リストです。比較は小文字で行います。
var genericLabelBlacklist = map[string]struct{}{
	"digital pro":   {},
	"cálido humano": {},
	"acción ya":     {},
	"moderno":       {},
	"natural":       {},
	"directo":       {},
	"rápido":        {},
	"rapido":        {},
	"medio":         {},
	"lento":         {},
	"alta":          {},
	"media":         {},
	"cero":          {},
}

// MCQGenerator は、ウィザード状態から 3 問の選択式質問を生成します。
// 同時リクエストは singleflight で 1 回の生成に束ねられます。
type MCQGenerator struct {
	textGen TextGenerator
	group   singleflight.Group
}

// NewMCQGenerator は MCQGenerator を初期化します。
func NewMCQGenerator(textGen TextGenerator) *MCQGenerator {
	return &MCQGenerator{textGen: textGen}
}

// Generate は質問セットを生成し、構造と語彙の検証まで行います。
func (g *MCQGenerator) Generate(ctx context.Context, data domain.WizardData) ([]domain.MCQQuestion, error) {
	prompt := prompts.Join(prompts.InstructionMCQ, prompts.BuildMCQPrompt(data))

	slog.Info("MCQGenerator: 質問セットを生成します")
	raw, err := g.textGen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("MCQ生成に失敗しました: %w", err)
	}

	var resp struct {
		Questions []domain.MCQQuestion `json:"questions"`
	}
	if err := parser.DecodeJSON(raw, &resp); err != nil {
		return nil, fmt.Errorf("MCQ応答の解析に失敗しました: %w", err)
	}

	if err := ValidateQuestionSet(resp.Questions); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// GenerateShared は同じキーの生成要求を 1 回のモデル呼び出しに束ねます。
// 生成済み判定は呼び出し側（ストアの MCQQuestions）が担います。
func (g *MCQGenerator) GenerateShared(ctx context.Context, key string, data domain.WizardData) ([]domain.MCQQuestion, error) {
	v, err, shared := g.group.Do(key, func() (any, error) {
		return g.Generate(ctx, data)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("MCQGenerator: 同時リクエストを合流させました", "key", key)
	}
	return v.([]domain.MCQQuestion), nil
}

// ValidateQuestionSet は質問セットの構造契約を検証します。
//   - 質問は 3 問、それぞれ選択肢 3 つ
//   - 質問 ID は固定 3 種、選択肢 ID は質問ごとの固定語彙
//   - 選択肢ラベルはセット全体でユニークかつ禁止リスト外
func ValidateQuestionSet(questions []domain.MCQQuestion) error {
	if len(questions) != 3 {
		return fmt.Errorf("質問は3問必要ですが %d 問でした", len(questions))
	}

	wantIDs := map[string]bool{
		domain.QuestionVisualStyle:   false,
		domain.QuestionVisualRhythm:  false,
		domain.QuestionHumanPresence: false,
	}
	seenLabels := make(map[string]string)

	for _, q := range questions {
		seen, ok := wantIDs[q.ID]
		if !ok {
			return fmt.Errorf("不明な質問IDです: %q", q.ID)
		}
		if seen {
			return fmt.Errorf("質問IDが重複しています: %q", q.ID)
		}
		wantIDs[q.ID] = true

		if len(q.Options) != 3 {
			return fmt.Errorf("質問 %q の選択肢は3つ必要ですが %d 個でした", q.ID, len(q.Options))
		}

		vocab := domain.QuestionOptionIDs[q.ID]
		for _, opt := range q.Options {
			if !containsID(vocab, opt.ID) {
				return fmt.Errorf("質問 %q に語彙外の選択肢IDがあります: %q", q.ID, opt.ID)
			}

			label := strings.ToLower(strings.TrimSpace(opt.Text))
			if label == "" {
				return fmt.Errorf("質問 %q の選択肢 %q のラベルが空です", q.ID, opt.ID)
			}
			if _, banned := genericLabelBlacklist[label]; banned {
				return fmt.Errorf("汎用ヘッダーは使用できません: %q", opt.Text)
			}
			if prev, dup := seenLabels[label]; dup {
				return fmt.Errorf("選択肢ラベルが重複しています: %q (既出: %s)", opt.Text, prev)
			}
			seenLabels[label] = q.ID

			// 15文字制約は表示崩れ止まりなので警告に留めます。
			if len([]rune(opt.Text)) > 15 {
				slog.Warn("MCQGenerator: ラベルが15文字を超えています", "question", q.ID, "text", opt.Text)
			}
		}
	}

	for id, seen := range wantIDs {
		if !seen {
			return fmt.Errorf("必須の質問が欠けています: %q", id)
		}
	}
	return nil
}

func containsID(vocab []string, id string) bool {
	for _, v := range vocab {
		if v == id {
			return true
		}
	}
	return false
}
