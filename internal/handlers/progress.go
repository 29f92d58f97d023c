package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harshastride/interview-coach/internal/requestdata"
	"github.com/harshastride/interview-coach/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (ph *ProgressHandler) Save(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req services.ProgressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := ph.progressService.Save(c.Request.Context(), rd.UserID, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (ph *ProgressHandler) Dashboard(c *gin.Context) {
	rows, err := ph.progressService.Dashboard(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
