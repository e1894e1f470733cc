package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Runway 互換ゲートウェイの既定値です。ポーリングは 5 秒間隔で最大 120 回、
// 約 10 分でタイムアウトします。
const (
	DefaultRunwayBaseURL = "https://api.dev.runwayml.com/v1"
	runwayAPIVersion     = "2024-11-06"

	defaultPollInterval = 5 * time.Second
	defaultMaxPolls     = 120

	imageModel = "gemini_2.5_flash"
	videoModel = "veo3.1_fast"

	ttsVoice                 = "ontario"
	imageDescriptionStrength = 0.3
)

// タスクの終端状態です。
const (
	taskSucceeded = "SUCCEEDED"
	taskFailed    = "FAILED"
	taskCancelled = "CANCELLED"
)

// errTaskNotReady はポーリング継続を表す内部エラーです。
var errTaskNotReady = errors.New("タスクは未完了です")

// task はゲートウェイのタスク表現です。
type task struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Output      []string `json:"output,omitempty"`
	Failure     string   `json:"failure,omitempty"`
	FailureCode string   `json:"failureCode,omitempty"`
}

// RunwayGateway は submit-then-poll 契約の描画ゲートウェイクライアントです。
type RunwayGateway struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	pollInterval time.Duration
	maxPolls     uint64
}

// RunwayOption は RunwayGateway の構成オプションです。
type RunwayOption func(*RunwayGateway)

// WithBaseURL はエンドポイントの基底 URL を差し替えます。空文字は無視します。
func WithBaseURL(baseURL string) RunwayOption {
	return func(g *RunwayGateway) {
		if baseURL != "" {
			g.baseURL = baseURL
		}
	}
}

// WithHTTPClient は HTTP クライアントを差し替えます。
func WithHTTPClient(client *http.Client) RunwayOption {
	return func(g *RunwayGateway) { g.httpClient = client }
}

// WithPolling はポーリング間隔と最大試行回数を調整します。ゼロ値は無視します。
func WithPolling(interval time.Duration, maxPolls uint64) RunwayOption {
	return func(g *RunwayGateway) {
		if interval > 0 {
			g.pollInterval = interval
		}
		if maxPolls > 0 {
			g.maxPolls = maxPolls
		}
	}
}

// NewRunwayGateway は RunwayGateway を初期化します。
func NewRunwayGateway(apiKey string, opts ...RunwayOption) (*RunwayGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("RunwayのAPIキーが指定されていません")
	}
	g := &RunwayGateway{
		baseURL:      DefaultRunwayBaseURL,
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		pollInterval: defaultPollInterval,
		maxPolls:     defaultMaxPolls,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// TextToImage は投稿画像の生成タスクを投入し、完成を待って URL を返します。
func (g *RunwayGateway) TextToImage(ctx context.Context, req ImageRequest) (string, error) {
	ratio := req.Ratio
	if ratio == "" {
		ratio = RatioSquare
	}

	payload := map[string]any{
		"model":      imageModel,
		"promptText": req.Prompt,
		"ratio":      ratio,
	}
	if len(req.ReferenceImages) > 0 {
		refs := make([]map[string]string, 0, len(req.ReferenceImages))
		for _, uri := range req.ReferenceImages {
			refs = append(refs, map[string]string{"uri": uri, "tag": "reference"})
		}
		payload["referenceImages"] = refs
	}

	taskID, err := g.submit(ctx, "/text_to_image", payload)
	if err != nil {
		return "", err
	}
	return g.waitForTask(ctx, taskID)
}

// TextToVideo は動画の生成タスクを投入し、完成を待って URL を返します。
func (g *RunwayGateway) TextToVideo(ctx context.Context, req VideoRequest) (string, error) {
	ratio := req.Ratio
	if ratio == "" {
		ratio = RatioVertical
	}

	payload := map[string]any{
		"model":      videoModel,
		"promptText": req.Prompt,
		"ratio":      ratio,
	}
	if req.VoiceScript != "" {
		payload["textToSpeech"] = map[string]string{
			"text":  req.VoiceScript,
			"voice": ttsVoice,
		}
	}
	if req.PromptImage != "" {
		payload["promptImage"] = []map[string]string{{"uri": req.PromptImage}}
		payload["imageDescriptionStrength"] = imageDescriptionStrength
	}

	taskID, err := g.submit(ctx, "/text_to_video", payload)
	if err != nil {
		return "", err
	}
	return g.waitForTask(ctx, taskID)
}

// submit はタスクを投入し、タスク ID を返します。
func (g *RunwayGateway) submit(ctx context.Context, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("リクエストのエンコードに失敗しました: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}
	g.setHeaders(httpReq)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("タスク投入に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("ゲートウェイがタスク投入を拒否しました (status %d): %s", resp.StatusCode, detail)
	}

	var t task
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return "", fmt.Errorf("タスク応答の解析に失敗しました: %w", err)
	}
	if t.ID == "" {
		return "", fmt.Errorf("ゲートウェイがタスクIDを返しませんでした")
	}

	slog.Info("RunwayGateway: タスクを投入しました", "path", path, "task_id", t.ID)
	return t.ID, nil
}

// waitForTask は終端状態まで一定間隔でポーリングします。
// FAILED / CANCELLED は即時失敗、試行上限に達した場合はタイムアウト失敗です。
func (g *RunwayGateway) waitForTask(ctx context.Context, taskID string) (string, error) {
	var output string

	poll := func() error {
		t, err := g.fetchTask(ctx, taskID)
		if err != nil {
			return backoff.Permanent(err)
		}

		switch t.Status {
		case taskSucceeded:
			if len(t.Output) == 0 {
				return backoff.Permanent(fmt.Errorf("タスク %s は成功しましたが出力がありません", taskID))
			}
			output = t.Output[0]
			return nil
		case taskFailed:
			return backoff.Permanent(fmt.Errorf("生成に失敗しました: %s (%s)",
				orUnknown(t.Failure), orCode(t.FailureCode)))
		case taskCancelled:
			return backoff.Permanent(fmt.Errorf("生成がキャンセルされました"))
		default:
			return fmt.Errorf("%w: タスク %s は %s です", errTaskNotReady, taskID, t.Status)
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(g.pollInterval), g.maxPolls),
		ctx,
	)
	if err := backoff.Retry(poll, policy); err != nil {
		if errors.Is(err, errTaskNotReady) && ctx.Err() == nil {
			return "", fmt.Errorf("生成がタイムアウトしました (task %s): %w", taskID, err)
		}
		return "", err
	}
	return output, nil
}

func (g *RunwayGateway) fetchTask(ctx context.Context, taskID string) (*task, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/tasks/"+taskID, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗しました: %w", err)
	}
	g.setHeaders(httpReq)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("タスク状態の取得に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("タスク状態の取得に失敗しました (status %d)", resp.StatusCode)
	}

	var t task
	if err := json.NewDecoder(resp.Body).Decode(&t); err != nil {
		return nil, fmt.Errorf("タスク状態の解析に失敗しました: %w", err)
	}
	return &t, nil
}

func (g *RunwayGateway) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("X-Runway-Version", runwayAPIVersion)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown error"
	}
	return s
}

func orCode(s string) string {
	if s == "" {
		return "NO_CODE"
	}
	return s
}
