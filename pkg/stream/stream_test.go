package stream

import (
	"context"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	ctx := context.Background()

	t.Run("断片を到着順に連結するのだ", func(t *testing.T) {
		body := "0:\"Un video \"\n0:\"que inspira\"\n"
		got, err := Decode(ctx, strings.NewReader(body), nil)
		if err != nil {
			t.Fatalf("復号に失敗したのだ: %v", err)
		}
		if got != "Un video que inspira" {
			t.Errorf("全文が違うのだ: %q", got)
		}
	})

	t.Run("壊れたJSONはクォート剥がしで救済するのだ", func(t *testing.T) {
		body := "0:\"broken \\escape\"\n"
		got, err := Decode(ctx, strings.NewReader(body), nil)
		if err != nil {
			t.Fatalf("復号に失敗したのだ: %v", err)
		}
		if got != "broken \\escape" {
			t.Errorf("救済結果が違うのだ: %q", got)
		}
	})

	t.Run("プレフィックスなしの生テキスト行は改行付きで拾うのだ", func(t *testing.T) {
		body := "raw line\ndata: skipped\n{\"meta\": true}\n0:\"tail\"\n"
		got, err := Decode(ctx, strings.NewReader(body), nil)
		if err != nil {
			t.Fatalf("復号に失敗したのだ: %v", err)
		}
		if got != "raw line\ntail" {
			t.Errorf("全文が違うのだ: %q", got)
		}
	})

	t.Run("改行なしの末尾バッファも取り込むのだ", func(t *testing.T) {
		body := "0:\"head \"\ntrailing buffer"
		got, err := Decode(ctx, strings.NewReader(body), nil)
		if err != nil {
			t.Fatalf("復号に失敗したのだ: %v", err)
		}
		if got != "head trailing buffer" {
			t.Errorf("全文が違うのだ: %q", got)
		}
	})

	t.Run("onDeltaは確定順に呼ばれるのだ", func(t *testing.T) {
		var deltas []string
		body := "0:\"a\"\n0:\"b\"\n0:\"c\"\n"
		if _, err := Decode(ctx, strings.NewReader(body), func(d string) {
			deltas = append(deltas, d)
		}); err != nil {
			t.Fatalf("復号に失敗したのだ: %v", err)
		}
		if strings.Join(deltas, "") != "abc" {
			t.Errorf("delta順序が崩れたのだ: %v", deltas)
		}
	})

	t.Run("キャンセル時は部分文を返すのだ", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		got, err := Decode(canceled, strings.NewReader("0:\"never\"\n"), nil)
		if err == nil {
			t.Fatal("キャンセルエラーが返るはずなのだ")
		}
		if got != "" {
			t.Errorf("キャンセル前の部分文だけのはずなのだ: %q", got)
		}
	})
}

func TestWriterRoundTrip(t *testing.T) {
	t.Run("書いたものを読み戻せるのだ", func(t *testing.T) {
		var buf strings.Builder
		w := NewWriter(&buf)
		text := "Una toma cinematográfica del café, luz cálida de atardecer."
		if err := w.WriteChunked(context.Background(), text, 7); err != nil {
			t.Fatalf("書き込みに失敗したのだ: %v", err)
		}

		got, err := Decode(context.Background(), strings.NewReader(buf.String()), nil)
		if err != nil {
			t.Fatalf("復号に失敗したのだ: %v", err)
		}
		if got != text {
			t.Errorf("往復で文が変わったのだ: %q", got)
		}
	})

	t.Run("空断片は行を生まないのだ", func(t *testing.T) {
		var buf strings.Builder
		w := NewWriter(&buf)
		if err := w.WriteText(""); err != nil {
			t.Fatalf("空断片でエラーなのだ: %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("出力は空のはずなのだ: %q", buf.String())
		}
	})
}
