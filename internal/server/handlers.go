package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-campaign-kit/pkg/domain"
	"github.com/shouni/go-campaign-kit/pkg/stream"
)

type analyzeRequest struct {
	URLs        []string `json:"urls" binding:"required"`
	Name        string   `json:"name"`
	Identity    string   `json:"identity"`
	Type        string   `json:"type"`
	ProductName string   `json:"productName"`
}

type mcqAnswerRequest struct {
	QuestionID string `json:"questionId" binding:"required"`
	OptionID   string `json:"optionId" binding:"required"`
}

type publishRequest struct {
	VideoCaption string `json:"videoCaption"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// hasNonBlank は空白だけでない要素が1つでもあるかを返します。
func hasNonBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// POST /api/analyze-urls
func (s *Server) handleAnalyzeURLs(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !hasNonBlank(req.URLs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "分析対象のURLが1つも指定されていません"})
		return
	}

	inputs := domain.UserInputs{
		Name:        req.Name,
		Identity:    req.Identity,
		ProductName: req.ProductName,
	}
	switch req.Type {
	case string(domain.TypeService):
		inputs.Type = domain.TypeService
	case string(domain.TypeProduct):
		inputs.Type = domain.TypeProduct
	}
	s.store.SetInputs(inputs)

	analysis, err := s.analyze.Run(c.Request.Context(), req.URLs)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"analysis":     analysis,
		"brandLogoUrl": analysis.LogoURL,
	})
}

// POST /api/generate-mcqs
func (s *Server) handleGenerateMCQs(c *gin.Context) {
	questions, err := s.mcq.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "questions": questions})
}

// POST /api/mcq-answer
func (s *Server) handleMCQAnswer(c *gin.Context) {
	var req mcqAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.store.SetMCQAnswer(req.QuestionID, req.OptionID)

	// 回答済みの選択肢を選択スタックにも積む。見つからなくても回答自体は有効です。
	data := s.store.Snapshot()
	if opt := data.MCQAnswerOption(req.QuestionID); opt != nil {
		s.store.PushSelection(domain.SelectionStackItem{
			ID:    opt.ID,
			Text:  opt.Text,
			Icon:  opt.Icon,
			Color: opt.Color,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/video-prompt
// 応答は "0:" エンベロープの行ストリームです。
func (s *Server) handleVideoPrompt(c *gin.Context) {
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")

	sw := stream.NewWriter(c.Writer)
	if _, err := s.videoPrompt.RunStream(c.Request.Context(), sw.WriteText); err != nil {
		// ヘッダー送出後はステータスを変えられないため、ログに残すだけです。
		_ = c.Error(err)
	}
}

// POST /api/image-prompt
func (s *Server) handleImagePrompt(c *gin.Context) {
	prompt, err := s.videoPrompt.RunImagePrompt(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")

	sw := stream.NewWriter(c.Writer)
	if err := sw.WriteChunked(c.Request.Context(), prompt, 0); err != nil {
		_ = c.Error(err)
	}
}

// POST /api/post-generation
func (s *Server) handlePostGeneration(c *gin.Context) {
	result, err := s.posts.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/generate-video
func (s *Server) handleGenerateVideo(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), videoTimeout)
	defer cancel()

	result, err := s.video.Run(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/publish
func (s *Server) handlePublish(c *gin.Context) {
	if s.publish == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "公開先エンドポイントが設定されていません"})
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.publish.Run(c.Request.Context(), req.VideoCaption)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// GET /api/wizard
func (s *Server) handleWizard(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot())
}

// POST /api/wizard/reset
func (s *Server) handleWizardReset(c *gin.Context) {
	s.store.Reset()
	c.JSON(http.StatusOK, gin.H{"success": true})
}
