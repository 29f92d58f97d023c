package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harshastride/interview-coach/internal/services"
)

type AuditHandler struct {
	auditService services.AuditService
}

func NewAuditHandler(auditService services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List returns the latest 100 entries, newest first.
func (ah *AuditHandler) List(c *gin.Context) {
	rows, err := ah.auditService.ListRecent(c.Request.Context(), 100)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
