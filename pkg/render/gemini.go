package render

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// ErrVideoUnsupported は gemini バックエンドに動画生成を要求した場合に返ります。
var ErrVideoUnsupported = fmt.Errorf("このバックエンドは動画生成に対応していません")

// GeminiGateway は gemini-image-kit で画像を描画するローカルバックエンドです。
// 生成バイト列を remote-io 経由で保存し、保存先パスを生成物 URL として返します。
// ゲートウェイの外部 API を使わないオフライン運用や検証用に使います。
type GeminiGateway struct {
	generator imagekit.ImageGenerator
	writer    remoteio.OutputWriter
	outputDir string
}

// NewGeminiGateway は GeminiGateway を初期化します。
func NewGeminiGateway(generator imagekit.ImageGenerator, writer remoteio.OutputWriter, outputDir string) (*GeminiGateway, error) {
	if generator == nil {
		return nil, fmt.Errorf("ImageGeneratorが指定されていません")
	}
	if writer == nil {
		return nil, fmt.Errorf("OutputWriterが指定されていません")
	}
	return &GeminiGateway{generator: generator, writer: writer, outputDir: outputDir}, nil
}

// TextToImage はプロンプトから 1 枚描画し、保存先パスを返します。
func (g *GeminiGateway) TextToImage(ctx context.Context, req ImageRequest) (string, error) {
	pageReq := imagedom.ImagePageRequest{
		Prompt:        req.Prompt,
		ReferenceURLs: req.ReferenceImages,
		AspectRatio:   toAspect(req.Ratio),
	}

	resp, err := g.generator.GenerateMangaPage(ctx, pageReq)
	if err != nil {
		return "", fmt.Errorf("画像の生成に失敗しました: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return "", fmt.Errorf("画像の生成結果が空です")
	}

	outputPath := path.Join(g.outputDir, fmt.Sprintf("post_%s%s", shortHash(req.Prompt), extFor(resp.MimeType)))
	if err := g.writer.Write(ctx, outputPath, bytes.NewReader(resp.Data), resp.MimeType); err != nil {
		return "", fmt.Errorf("画像の保存に失敗しました: %w", err)
	}

	slog.Info("GeminiGateway: 画像を保存しました", "path", outputPath)
	return outputPath, nil
}

// TextToVideo は常に ErrVideoUnsupported を返します。
func (g *GeminiGateway) TextToVideo(_ context.Context, _ VideoRequest) (string, error) {
	return "", ErrVideoUnsupported
}

// toAspect はゲートウェイ形式の比率表記を image-kit の表記へ写します。
func toAspect(ratio string) string {
	switch ratio {
	case RatioVertical:
		return "9:16"
	case RatioSquare, "":
		return "1:1"
	default:
		return "1:1"
	}
}

func extFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:6])
}
