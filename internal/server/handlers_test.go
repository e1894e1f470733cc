package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/store"
)

// 呼ばれたかどうかだけを記録する分析ランナーなのだ。
type recordingAnalyzeRunner struct {
	calls int
}

func (r *recordingAnalyzeRunner) Run(_ context.Context, _ []string) (*domain.URLAnalysis, error) {
	r.calls++
	return &domain.URLAnalysis{URL: "https://llaima.ai"}, nil
}

func newTestServer(analyze *recordingAnalyzeRunner) *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		engine:  gin.New(),
		store:   store.New(),
		analyze: analyze,
	}
	s.registerRoutes()
	return s
}

func TestHandleAnalyzeURLs_Validation(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantCalls  int
	}{
		{"空白だけのURLリストは400なのだ", `{"urls": ["", "   "]}`, http.StatusBadRequest, 0},
		{"urls欠落は400なのだ", `{"name": "Llaima Café"}`, http.StatusBadRequest, 0},
		{"有効なURLが1つあれば分析するのだ", `{"urls": ["  ", "llaima.ai"]}`, http.StatusOK, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			analyze := &recordingAnalyzeRunner{}
			s := newTestServer(analyze)

			req := httptest.NewRequest(http.MethodPost, "/api/analyze-urls", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			s.engine.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("ステータスが違うのだ: got %d, want %d (%s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			if analyze.calls != tc.wantCalls {
				t.Errorf("ランナー呼び出し回数が違うのだ: got %d, want %d", analyze.calls, tc.wantCalls)
			}
		})
	}
}
