package handlers

import (
	"encoding/base64"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/harshastride/interview-coach/internal/services"
)

type TtsHandler struct {
	ttsService services.TtsService
}

func NewTtsHandler(ttsService services.TtsService) *TtsHandler {
	return &TtsHandler{ttsService: ttsService}
}

func (th *TtsHandler) Get(c *gin.Context) {
	term := c.Param("term")
	if decoded, err := url.PathUnescape(term); err == nil {
		term = decoded
	}
	audio, err := th.ttsService.Get(c.Request.Context(), term)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audio": base64.StdEncoding.EncodeToString(audio)})
}

func (th *TtsHandler) Save(c *gin.Context) {
	var req struct {
		Term  string `json:"term"`
		Audio string `json:"audio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Term == "" || req.Audio == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing term or audio"})
		return
	}
	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid audio encoding"})
		return
	}
	if err := th.ttsService.Save(c.Request.Context(), req.Term, audio); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
