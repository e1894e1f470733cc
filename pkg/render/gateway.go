// Package render は、投稿画像とキャンペーン動画の描画を提供します。
// 外部の生成ゲートウェイ（タスク投入とポーリングの非同期契約）と、
// gemini-image-kit によるローカル描画バックエンドを備えます。
package render

import "context"

// 縦型動画とインスタグラム投稿で使う固定アスペクト比です。
const (
	RatioSquare   = "1024:1024"
	RatioVertical = "720:1280"
)

// ImageRequest は画像描画 1 件分の要求です。
type ImageRequest struct {
	Prompt          string
	Ratio           string
	ReferenceImages []string
}

// VideoRequest は動画描画 1 件分の要求です。VoiceScript が空でなければ
// ナレーション音声の合成を依頼します。
type VideoRequest struct {
	Prompt      string
	Ratio       string
	PromptImage string
	VoiceScript string
}

// Gateway は描画バックエンドの契約です。どちらの操作も完成した
// 生成物の URL（またはパス）を返します。
type Gateway interface {
	TextToImage(ctx context.Context, req ImageRequest) (string, error)
	TextToVideo(ctx context.Context, req VideoRequest) (string, error)
}
