// Package stream は、テキスト生成のストリーミング応答で使う行区切り
// エンベロープの読み書きを提供します。1 行は "0:" プレフィックスに
// JSON 文字列化したテキスト断片を続けた形式で、受信側は到着順に断片を
// 連結して全文を復元します。
package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// TextPrefix はテキスト断片行のプレフィックスです。
const TextPrefix = "0:"

// Writer はエンベロープ形式でテキスト断片を書き出します。
// 書き込み先が http.Flusher を実装していれば断片ごとにフラッシュします。
type Writer struct {
	w       io.Writer
	flusher http.Flusher
}

// NewWriter は w に書き出す Writer を作成します。
func NewWriter(w io.Writer) *Writer {
	sw := &Writer{w: w}
	if f, ok := w.(http.Flusher); ok {
		sw.flusher = f
	}
	return sw
}

// WriteText はテキスト断片を 1 行のエンベロープとして書き出します。
// 空の断片は黙って無視します。
func (sw *Writer) WriteText(chunk string) error {
	if chunk == "" {
		return nil
	}
	encoded, err := json.Marshal(chunk)
	if err != nil {
		return fmt.Errorf("断片のJSONエンコードに失敗しました: %w", err)
	}
	if _, err := fmt.Fprintf(sw.w, "%s%s\n", TextPrefix, encoded); err != nil {
		return fmt.Errorf("ストリームへの書き込みに失敗しました: %w", err)
	}
	if sw.flusher != nil {
		sw.flusher.Flush()
	}
	return nil
}

// WriteChunked はテキスト全文をルーン単位の断片に割って順に書き出します。
// chunkSize が 0 以下の場合は既定の断片長を使います。
func (sw *Writer) WriteChunked(ctx context.Context, text string, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = 48
	}
	runes := []rune(text)
	for start := 0; start < len(runes); start += chunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		if err := sw.WriteText(string(runes[start:end])); err != nil {
			return err
		}
	}
	return nil
}

// Decode はエンベロープを復号し、断片を到着順に連結した全文を返します。
// onDelta が非 nil なら断片が確定するたびに呼ばれます。壊れた行は
// 可能な範囲で救済します。
//   - "0:" 行の JSON デコードに失敗した場合、前後のクォートを剥がした
//     残りを採用します。
//   - "data:" でも "{" でも始まらない非空行は、生テキストとして改行付きで
//     取り込みます。
//   - 改行で終わらない末尾バッファは最後に生のまま連結します。
//
// ctx のキャンセル時は、それまでに復元できた部分文と ctx.Err() を返します。
func Decode(ctx context.Context, r io.Reader, onDelta func(string)) (string, error) {
	var full strings.Builder
	emit := func(s string) {
		if s == "" {
			return
		}
		full.WriteString(s)
		if onDelta != nil {
			onDelta(s)
		}
	}

	reader := bufio.NewReader(r)
	for {
		if err := ctx.Err(); err != nil {
			return full.String(), err
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				if strings.TrimSpace(line) != "" {
					emit(line)
				}
				return full.String(), nil
			}
			return full.String(), fmt.Errorf("ストリームの読み取りに失敗しました: %w", err)
		}

		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, TextPrefix) {
			content := strings.TrimSpace(line[len(TextPrefix):])
			var chunk string
			if jsonErr := json.Unmarshal([]byte(content), &chunk); jsonErr == nil {
				emit(chunk)
				continue
			}
			emit(stripEnvelopeQuotes(content))
			continue
		}

		if !strings.HasPrefix(line, "data:") && !strings.HasPrefix(line, "{") {
			emit(line + "\n")
		}
	}
}

// stripEnvelopeQuotes は行頭と行末のクォートを 1 文字ずつ取り除きます。
func stripEnvelopeQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimPrefix(s, `'`)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSuffix(s, `'`)
	return s
}
