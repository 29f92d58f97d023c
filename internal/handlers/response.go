package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harshastride/interview-coach/internal/services"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Duplicate conflicts carry the offending questions in the payload.
func respondServiceError(c *gin.Context, err error) {
	var dup *services.DuplicateQuestionsError
	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{"error": "Duplicates found", "duplicates": dup.Questions})
	case errors.Is(err, services.ErrSelfModify):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
