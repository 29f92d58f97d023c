package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harshastride/interview-coach/internal/requestdata"
	"github.com/harshastride/interview-coach/internal/services"
)

type AccessRequestHandler struct {
	requestService services.AccessRequestService
}

func NewAccessRequestHandler(requestService services.AccessRequestService) *AccessRequestHandler {
	return &AccessRequestHandler{requestService: requestService}
}

// Create files a request under the signed-in identity's email; the caller
// only supplies a display name and an optional reason.
func (rh *AccessRequestHandler) Create(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		Name   string `json:"name"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := rh.requestService.Create(c.Request.Context(), rd.Email, req.Name, req.Reason); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (rh *AccessRequestHandler) ListPending(c *gin.Context) {
	rows, err := rh.requestService.ListPending(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (rh *AccessRequestHandler) Approve(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := rh.requestService.Approve(c.Request.Context(), rd.UserID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (rh *AccessRequestHandler) Reject(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := rh.requestService.Reject(c.Request.Context(), rd.UserID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
