package render

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	// 参照画像の寸法判定に使うデコーダー群の登録です。
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// 参照画像としてゲートウェイに渡せる条件です。
//   - MIME タイプは JPEG / PNG / WebP
//   - サイズは 16MiB 以下
//   - 横縦比は 2.286 以下（2.286 ちょうどは許容）
const (
	maxReferenceBytes  = 16 * 1024 * 1024
	maxReferenceAspect = 2.286

	// 寸法の判定にはヘッダー部分だけあれば足ります。
	probeReadLimit = 512 * 1024
)

var validReferenceTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// ReferenceValidator は参照画像 URL の事前検証を行います。
// 検証結果は URL をキーに TTL キャッシュへ載せます。
type ReferenceValidator struct {
	httpClient *http.Client
	cache      *cache.Cache
}

type probeResult struct {
	finalURL string
	ok       bool
}

// NewReferenceValidator は ReferenceValidator を初期化します。
func NewReferenceValidator(httpClient *http.Client, ttl time.Duration) *ReferenceValidator {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &ReferenceValidator{
		httpClient: httpClient,
		cache:      cache.New(ttl, ttl*3),
	}
}

// Validate は URL の参照画像としての妥当性を検証します。
// 妥当な場合はリダイレクト追跡後の最終 URL と true を返します。
// 不正な画像はワークフローを止めずに黙って落とすため、エラーは返しません。
func (v *ReferenceValidator) Validate(ctx context.Context, url string) (string, bool) {
	if strings.TrimSpace(url) == "" {
		return "", false
	}

	if cached, hit := v.cache.Get(url); hit {
		result := cached.(probeResult)
		return result.finalURL, result.ok
	}

	finalURL, ok := v.probe(ctx, url)
	v.cache.Set(url, probeResult{finalURL: finalURL, ok: ok}, cache.DefaultExpiration)
	return finalURL, ok
}

// ValidateAll は候補のうち妥当なものだけを順序を保って返します。
func (v *ReferenceValidator) ValidateAll(ctx context.Context, candidates []string) []string {
	var valid []string
	for _, c := range candidates {
		if finalURL, ok := v.Validate(ctx, c); ok {
			valid = append(valid, finalURL)
		}
	}
	return valid
}

func (v *ReferenceValidator) probe(ctx context.Context, url string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		slog.Warn("ReferenceValidator: リクエストを作成できません", "url", url, "error", err)
		return "", false
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		slog.Warn("ReferenceValidator: 画像の取得に失敗しました", "url", url, "error", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("ReferenceValidator: 画像の取得に失敗しました", "url", url, "status", resp.StatusCode)
		return "", false
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if _, ok := validReferenceTypes[contentType]; !ok {
		slog.Warn("ReferenceValidator: 非対応のMIMEタイプです", "url", url, "content_type", contentType)
		return "", false
	}

	if resp.ContentLength > maxReferenceBytes {
		slog.Warn("ReferenceValidator: 画像が大きすぎます", "url", url, "bytes", resp.ContentLength)
		return "", false
	}

	cfg, _, err := image.DecodeConfig(io.LimitReader(resp.Body, probeReadLimit))
	if err != nil {
		slog.Warn("ReferenceValidator: 寸法を判定できません", "url", url, "error", err)
		return "", false
	}
	if cfg.Height <= 0 {
		return "", false
	}

	aspect := float64(cfg.Width) / float64(cfg.Height)
	if aspect > maxReferenceAspect {
		slog.Warn("ReferenceValidator: 横縦比が広すぎます",
			"url", url, "aspect", fmt.Sprintf("%.3f", aspect), "max", maxReferenceAspect)
		return "", false
	}

	// リダイレクト追跡後の最終URLを参照として使います。
	finalURL := url
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return finalURL, true
}
