package render

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("PNGエンコードに失敗したのだ: %v", err)
	}
	return buf.Bytes()
}

func serveImage(t *testing.T, contentType string, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write(body)
	}))
}

func newTestValidator() *ReferenceValidator {
	return NewReferenceValidator(&http.Client{Timeout: 5 * time.Second}, time.Minute)
}

func TestReferenceValidator_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("正方形のPNGは通るのだ", func(t *testing.T) {
		srv := serveImage(t, "image/png", encodePNG(t, 100, 100))
		defer srv.Close()

		finalURL, ok := newTestValidator().Validate(ctx, srv.URL)
		if !ok {
			t.Fatal("通るはずなのだ")
		}
		if finalURL == "" {
			t.Error("最終URLが空なのだ")
		}
	})

	t.Run("横縦比2.286ちょうどは許容なのだ", func(t *testing.T) {
		srv := serveImage(t, "image/png", encodePNG(t, 2286, 1000))
		defer srv.Close()

		if _, ok := newTestValidator().Validate(ctx, srv.URL); !ok {
			t.Error("境界値は通るはずなのだ")
		}
	})

	t.Run("横縦比2.3は落とすのだ", func(t *testing.T) {
		srv := serveImage(t, "image/png", encodePNG(t, 2300, 1000))
		defer srv.Close()

		if _, ok := newTestValidator().Validate(ctx, srv.URL); ok {
			t.Error("広すぎる画像は落ちるはずなのだ")
		}
	})

	t.Run("非対応MIMEタイプは落とすのだ", func(t *testing.T) {
		srv := serveImage(t, "image/gif", []byte("GIF89a"))
		defer srv.Close()

		if _, ok := newTestValidator().Validate(ctx, srv.URL); ok {
			t.Error("GIFは落ちるはずなのだ")
		}
	})

	t.Run("16MiB超は落とすのだ", func(t *testing.T) {
		big := make([]byte, maxReferenceBytes+1)
		srv := serveImage(t, "image/png", big)
		defer srv.Close()

		if _, ok := newTestValidator().Validate(ctx, srv.URL); ok {
			t.Error("大きすぎる画像は落ちるはずなのだ")
		}
	})

	t.Run("空URLは落とすのだ", func(t *testing.T) {
		if _, ok := newTestValidator().Validate(ctx, "  "); ok {
			t.Error("空URLは落ちるはずなのだ")
		}
	})
}

func TestReferenceValidator_ValidateAll(t *testing.T) {
	good := serveImage(t, "image/png", encodePNG(t, 64, 64))
	defer good.Close()
	bad := serveImage(t, "text/html", []byte("<html>"))
	defer bad.Close()

	valid := newTestValidator().ValidateAll(context.Background(), []string{bad.URL, good.URL, ""})
	if len(valid) != 1 || valid[0] == "" {
		t.Fatalf("妥当な1件だけが残るはずなのだ: %v", valid)
	}
}
