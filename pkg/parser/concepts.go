// Package parser は、AI モデルの応答テキストからキャンペーン構造を取り出す
// 防御的なパース関数群を提供します。モデルは JSON の前後に説明文や
// コードブロック記号を付けたり、フィールドを二重に文字列化したりするため、
// ここでは「取れるものは取り、取れないものは空にする」方針を取ります。
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shouni/go-campaign-kit/pkg/domain"
)

// 応答本文から最初の { と最後の } に挟まれた部分を貪欲に切り出します。
var jsonObjectRegex = regexp.MustCompile(`(?s)\{.*\}`)

// ExtractJSONObject は応答テキストからトップレベルの JSON オブジェクトを
// 取り出します。まず貪欲な波括弧マッチを試し、それが JSON として壊れて
// いれば本文全体のパースにフォールバックします。
func ExtractJSONObject(raw string) (map[string]json.RawMessage, error) {
	trimmed := strings.TrimSpace(raw)

	if match := jsonObjectRegex.FindString(trimmed); match != "" {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(match), &obj); err == nil {
			return obj, nil
		}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, fmt.Errorf("応答からJSONオブジェクトを抽出できませんでした: %w", err)
	}
	return obj, nil
}

// DecodeJSON は ExtractJSONObject と同じ探索規則で JSON 部分を特定し、
// v にデコードします。構造化出力を期待する各ジェネレーターが共用します。
func DecodeJSON(raw string, v any) error {
	trimmed := strings.TrimSpace(raw)

	if match := jsonObjectRegex.FindString(trimmed); match != "" {
		if err := json.Unmarshal([]byte(match), v); err == nil {
			return nil
		}
	}

	if err := json.Unmarshal([]byte(trimmed), v); err != nil {
		return fmt.Errorf("応答のJSONデコードに失敗しました: %w", err)
	}
	return nil
}

// ExtractCaption はコンセプト値からキャプション文字列を取り出します。
func ExtractCaption(raw json.RawMessage) string {
	return extractConceptField(raw, "caption")
}

// ExtractDescription はコンセプト値から画像プロンプト文字列を取り出します。
func ExtractDescription(raw json.RawMessage) string {
	return extractConceptField(raw, "description")
}

// extractConceptField は以下の順でフィールドを解決します。
//  1. 値がオブジェクトで該当フィールドが文字列ならその値
//  2. 値がオブジェクトで該当フィールドが非文字列なら文字列化した値
//  3. 値が文字列で、その中身が JSON オブジェクトとしてパースでき
//     該当フィールドが文字列ならその値
//  4. 値がただの文字列ならその文字列自体
//  5. null・欠落・その他は空文字
func extractConceptField(raw json.RawMessage, field string) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		v, ok := obj[field]
		if !ok || v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}

	var str string
	if err := json.Unmarshal([]byte(trimmed), &str); err == nil {
		var inner map[string]any
		if err := json.Unmarshal([]byte(str), &inner); err == nil {
			if s, ok := inner[field].(string); ok {
				return s
			}
		}
		return str
	}

	return ""
}

// ParseConcepts は応答テキストから "ID:1".."ID:3" の 3 コンセプトを
// 取り出します。個別コンセプトの欠落や形崩れは空フィールドに落とし、
// トップレベルの JSON が見つからない場合のみエラーを返します。
func ParseConcepts(raw string) ([]domain.GeneratedPost, error) {
	obj, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.GeneratedPost, 0, 3)
	for i := 1; i <= 3; i++ {
		value := obj[fmt.Sprintf("ID:%d", i)]
		posts = append(posts, domain.GeneratedPost{
			ID:          i,
			Description: ExtractDescription(value),
			Caption:     ExtractCaption(value),
		})
	}
	return posts, nil
}

// StripOuterQuotes は先頭と末尾のクォート 1 文字ずつを取り除き、前後の
// 空白を落とします。画像プロンプトの掃除に使います。
func StripOuterQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimPrefix(s, `'`)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSuffix(s, `'`)
	return strings.TrimSpace(s)
}
