package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harshastride/interview-coach/internal/requestdata"
	"github.com/harshastride/interview-coach/internal/services"
)

type AdminContentHandler struct {
	contentService services.ContentService
}

func NewAdminContentHandler(contentService services.ContentService) *AdminContentHandler {
	return &AdminContentHandler{contentService: contentService}
}

func (ch *AdminContentHandler) ListTerms(c *gin.Context) {
	rows, err := ch.contentService.ListTermsAdmin(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ch *AdminContentHandler) CreateTerm(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req services.TermInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := ch.contentService.CreateTerm(c.Request.Context(), rd.UserID, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (ch *AdminContentHandler) BulkCreateTerms(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		Entries []services.TermInput `json:"entries"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Entries == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entries array required"})
		return
	}
	imported, err := ch.contentService.BulkCreateTerms(c.Request.Context(), rd.UserID, req.Entries)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "imported": imported})
}

func (ch *AdminContentHandler) DeleteTerm(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := ch.contentService.DeleteTerm(c.Request.Context(), rd.UserID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (ch *AdminContentHandler) ListInterview(c *gin.Context) {
	rows, err := ch.contentService.ListInterviewAdmin(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ch *AdminContentHandler) CreateInterview(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		Question    string `json:"question"`
		IdealAnswer string `json:"ideal_answer"`
		Role        string `json:"role"`
		Company     string `json:"company"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := ch.contentService.CreateInterview(c.Request.Context(), rd.UserID, req.Question, req.IdealAnswer, req.Role, req.Company); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (ch *AdminContentHandler) BulkCreateInterview(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		Entries []services.QAInput `json:"entries"`
		Role    string             `json:"role"`
		Company string             `json:"company"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Entries == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entries, role, company required"})
		return
	}
	imported, err := ch.contentService.BulkCreateInterviews(c.Request.Context(), rd.UserID, req.Role, req.Company, req.Entries)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "imported": imported})
}

func (ch *AdminContentHandler) DeleteInterview(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := ch.contentService.DeleteInterview(c.Request.Context(), rd.UserID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
