// Package publisher は、生成済みアセットのソーシャルプラットフォームへの
// 公開を提供します。公開は Webhook への逐次 POST で行い、個別の失敗は
// スキップしてキュー全体を最後まで流します。
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/go-campaign-kit/pkg/domain"
)

// MediaType は公開アセットの種別です。
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Item は公開キューの 1 エントリです。
type Item struct {
	AssetURL string
	Caption  string
	Media    MediaType
}

// PostResult は公開に成功した 1 投稿の記録です。
// Degraded は ID は得られたがパーマリンクが空だった場合に立ちます。
type PostResult struct {
	ID        string    `json:"id"`
	Permalink string    `json:"permalink"`
	Media     MediaType `json:"media"`
	Degraded  bool      `json:"degraded,omitempty"`
}

// BatchResult は公開バッチ全体の集計です。
type BatchResult struct {
	Total     int          `json:"total"`
	Completed int          `json:"completed"`
	Posts     []PostResult `json:"posts"`
}

// webhookResponse はプラットフォーム側の応答契約です。
// id と permalink の両方が揃えば完全成功、片方でもあれば劣化成功として
// 記録します。この劣化許容はプラットフォーム契約の曖昧さ由来です。
type webhookResponse struct {
	ID        string `json:"id"`
	Permalink string `json:"permalink"`
}

// Dispatcher は公開キューを逐次処理するディスパッチャーです。
// 同時 POST はプラットフォーム側のレート制限に触れるため行いません。
type Dispatcher struct {
	imageEndpoint string
	videoEndpoint string
	httpClient    *http.Client
	onPosted      func(PostResult)
	now           func() time.Time
}

// DispatcherOption は Dispatcher の構成オプションです。
type DispatcherOption func(*Dispatcher)

// WithHTTPClient は HTTP クライアントを差し替えます。
func WithHTTPClient(client *http.Client) DispatcherOption {
	return func(d *Dispatcher) { d.httpClient = client }
}

// WithOnPosted は投稿成功ごとのコールバックを設定します。
func WithOnPosted(fn func(PostResult)) DispatcherOption {
	return func(d *Dispatcher) { d.onPosted = fn }
}

// NewDispatcher は Dispatcher を初期化します。
func NewDispatcher(imageEndpoint, videoEndpoint string, opts ...DispatcherOption) (*Dispatcher, error) {
	if imageEndpoint == "" && videoEndpoint == "" {
		return nil, fmt.Errorf("公開先エンドポイントが1つも指定されていません")
	}
	d := &Dispatcher{
		imageEndpoint: imageEndpoint,
		videoEndpoint: videoEndpoint,
		httpClient:    &http.Client{Timeout: 60 * time.Second},
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Publish はキューを先頭から 1 件ずつ公開します。個別の失敗は記録して
// スキップし、コンテキストのキャンセルだけが処理を中断します。
func (d *Dispatcher) Publish(ctx context.Context, items []Item) (BatchResult, error) {
	result := BatchResult{Total: len(items)}

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		post, err := d.publishOne(ctx, item)
		if err != nil {
			slog.Warn("Dispatcher: 投稿をスキップします", "index", i, "media", item.Media, "error", err)
			continue
		}

		result.Posts = append(result.Posts, *post)
		result.Completed++
		if d.onPosted != nil {
			d.onPosted(*post)
		}
		slog.Info("Dispatcher: 投稿が完了しました",
			"index", i, "media", item.Media, "id", post.ID, "degraded", post.Degraded)
	}

	slog.Info("Dispatcher: バッチが完了しました", "total", result.Total, "completed", result.Completed)
	return result, nil
}

func (d *Dispatcher) publishOne(ctx context.Context, item Item) (*PostResult, error) {
	endpoint := d.imageEndpoint
	if item.Media == MediaVideo {
		endpoint = d.videoEndpoint
	}
	if endpoint == "" {
		return nil, fmt.Errorf("メディア種別 %q のエンドポイントが未設定です", item.Media)
	}
	if item.AssetURL == "" {
		return nil, fmt.Errorf("アセットURLが空です")
	}

	body, err := json.Marshal(map[string]string{
		"url":     item.AssetURL,
		"caption": item.Caption,
	})
	if err != nil {
		return nil, fmt.Errorf("ペイロードのエンコードに失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("公開リクエストに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("公開が拒否されました (status %d): %s", resp.StatusCode, detail)
	}

	var wr webhookResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("公開応答の解析に失敗しました: %w", err)
	}

	if wr.ID != "" && wr.Permalink != "" {
		return &PostResult{ID: wr.ID, Permalink: wr.Permalink, Media: item.Media}, nil
	}
	if wr.ID != "" || wr.Permalink != "" {
		id := wr.ID
		if id == "" {
			id = fmt.Sprintf("temp-%d", d.now().UnixNano())
		}
		return &PostResult{ID: id, Permalink: wr.Permalink, Media: item.Media, Degraded: true}, nil
	}
	return nil, fmt.Errorf("公開応答にIDもパーマリンクもありません")
}

// BuildQueue は生成済み投稿と動画から公開キューを組み立てます。
// 動画があれば先頭に載せ、その後に画像 URL を持つ投稿を並べます。
func BuildQueue(posts []domain.GeneratedPost, videoURL, videoCaption string) []Item {
	var items []Item
	if videoURL != "" {
		items = append(items, Item{AssetURL: videoURL, Caption: videoCaption, Media: MediaVideo})
	}
	for _, post := range posts {
		if post.ImageURL == "" {
			continue
		}
		items = append(items, Item{
			AssetURL: post.ImageURL,
			Caption:  CaptionFor(post),
			Media:    MediaImage,
		})
	}
	return items
}

// CaptionFor は投稿のキャプションを解決します。キャプションが JSON 片の
// まま残っている場合は中身を掘り、空なら説明文に落とします。
func CaptionFor(post domain.GeneratedPost) string {
	caption := strings.TrimSpace(post.Caption)
	if caption == "" {
		return post.Description
	}
	if strings.HasPrefix(caption, "{") {
		var inner struct {
			Caption     string `json:"caption"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal([]byte(caption), &inner); err == nil {
			if inner.Caption != "" {
				return inner.Caption
			}
			if inner.Description != "" {
				return inner.Description
			}
		}
	}
	return caption
}
