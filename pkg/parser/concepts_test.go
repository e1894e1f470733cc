package parser

import (
	"encoding/json"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("説明文に埋もれたJSONを拾えるのだ", func(t *testing.T) {
		raw := "ここに3つのコンセプトを用意しました！\n```json\n" +
			`{"ID:1": {"description": "a studio shot", "caption": "¡Hola!"}}` +
			"\n```\nご確認ください。"
		obj, err := ExtractJSONObject(raw)
		if err != nil {
			t.Fatalf("抽出に失敗したのだ: %v", err)
		}
		if _, ok := obj["ID:1"]; !ok {
			t.Errorf("ID:1 が見つからないのだ: %v", obj)
		}
	})

	t.Run("波括弧が無い応答はエラーなのだ", func(t *testing.T) {
		if _, err := ExtractJSONObject("lo siento, no puedo generar eso"); err == nil {
			t.Error("エラーになるはずなのだ")
		}
	})
}

func TestExtractConceptField_FallbackChain(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		wantDesc string
		wantCap  string
	}{
		{
			name:     "素直なオブジェクト",
			raw:      `{"description": "warm cafe interior", "caption": "Café con alma ☕"}`,
			wantDesc: "warm cafe interior",
			wantCap:  "Café con alma ☕",
		},
		{
			name:     "二重に文字列化されたオブジェクト",
			raw:      `"{\"description\": \"bold neon sign\", \"caption\": \"Enciende tu marca\"}"`,
			wantDesc: "bold neon sign",
			wantCap:  "Enciende tu marca",
		},
		{
			name:     "ただの文字列は両フィールドに流用されるのだ",
			raw:      `"a plain prompt string"`,
			wantDesc: "a plain prompt string",
			wantCap:  "a plain prompt string",
		},
		{
			name:     "nullは空文字",
			raw:      `null`,
			wantDesc: "",
			wantCap:  "",
		},
		{
			name:     "フィールド欠落は空文字",
			raw:      `{"caption": "solo caption"}`,
			wantDesc: "",
			wantCap:  "solo caption",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := json.RawMessage(tc.raw)
			if got := ExtractDescription(raw); got != tc.wantDesc {
				t.Errorf("description = %q, 期待 %q", got, tc.wantDesc)
			}
			if got := ExtractCaption(raw); got != tc.wantCap {
				t.Errorf("caption = %q, 期待 %q", got, tc.wantCap)
			}
		})
	}
}

// 抽出結果をもう一度抽出しても結果が変わらないことを確認するのだ。
func TestExtractConceptField_Idempotent(t *testing.T) {
	raw := json.RawMessage(`"{\"caption\": \"Primera pasada\"}"`)

	first := ExtractCaption(raw)
	second := ExtractCaption(mustQuote(t, first))

	if first != "Primera pasada" {
		t.Fatalf("1回目の抽出が不正なのだ: %q", first)
	}
	if second != first {
		t.Errorf("2回目で結果が変わったのだ: %q -> %q", first, second)
	}
}

func mustQuote(t *testing.T, s string) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("quote失敗なのだ: %v", err)
	}
	return b
}

func TestParseConcepts(t *testing.T) {
	t.Run("3コンセプトを順序通りに取り出すのだ", func(t *testing.T) {
		raw := `{
			"ID:1": {"description": "d1", "caption": "c1"},
			"ID:2": "{\"description\": \"d2\", \"caption\": \"c2\"}",
			"ID:3": null
		}`
		posts, err := ParseConcepts(raw)
		if err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}
		if len(posts) != 3 {
			t.Fatalf("3件のはずが %d 件なのだ", len(posts))
		}
		if posts[0].Description != "d1" || posts[0].Caption != "c1" {
			t.Errorf("ID:1 が不正なのだ: %+v", posts[0])
		}
		if posts[1].Description != "d2" || posts[1].Caption != "c2" {
			t.Errorf("ID:2 の二重文字列化が解決できていないのだ: %+v", posts[1])
		}
		if posts[2].ID != 3 || posts[2].Description != "" || posts[2].Caption != "" {
			t.Errorf("ID:3 は空フィールドで残るはずなのだ: %+v", posts[2])
		}
	})

	t.Run("キー欠落も空フィールドで埋めるのだ", func(t *testing.T) {
		posts, err := ParseConcepts(`{"ID:1": {"caption": "solo"}}`)
		if err != nil {
			t.Fatalf("パース失敗なのだ: %v", err)
		}
		if posts[1].Caption != "" || posts[2].Caption != "" {
			t.Errorf("欠落キーが空になっていないのだ: %+v", posts)
		}
	})
}

func TestStripOuterQuotes(t *testing.T) {
	cases := map[string]string{
		`"a cinematic shot"`:  "a cinematic shot",
		`'single quoted'`:     "single quoted",
		` plain text `:        "plain text",
		`"inner "quote" ok"`:  `inner "quote" ok`,
	}
	for in, want := range cases {
		if got := StripOuterQuotes(in); got != want {
			t.Errorf("StripOuterQuotes(%q) = %q, 期待 %q", in, got, want)
		}
	}
}
