package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harshastride/interview-coach/internal/services"
)

// ContentHandler serves the study projections the learning UI consumes.
type ContentHandler struct {
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (ch *ContentHandler) Terms(c *gin.Context) {
	rows, err := ch.contentService.ListTermsStudy(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ch *ContentHandler) Interview(c *gin.Context) {
	rows, err := ch.contentService.ListInterviewStudy(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
