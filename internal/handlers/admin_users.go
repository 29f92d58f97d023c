package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harshastride/interview-coach/internal/requestdata"
	"github.com/harshastride/interview-coach/internal/services"
)

type AdminUsersHandler struct {
	userService services.UserService
}

func NewAdminUsersHandler(userService services.UserService) *AdminUsersHandler {
	return &AdminUsersHandler{userService: userService}
}

func (uh *AdminUsersHandler) List(c *gin.Context) {
	rows, err := uh.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (uh *AdminUsersHandler) Patch(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req struct {
		Role      *string `json:"role"`
		IsAllowed *bool   `json:"is_allowed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	update := services.UserUpdate{Role: req.Role, IsAllowed: req.IsAllowed}
	if err := uh.userService.UpdateUser(c.Request.Context(), rd.UserID, id, update); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (uh *AdminUsersHandler) Delete(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := uh.userService.RemoveUser(c.Request.Context(), rd.UserID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (uh *AdminUsersHandler) ListAllowlist(c *gin.Context) {
	rows, err := uh.userService.ListAllowlist(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (uh *AdminUsersHandler) AddAllowlist(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email required"})
		return
	}
	if err := uh.userService.AddAllowlist(c.Request.Context(), rd.UserID, req.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (uh *AdminUsersHandler) RemoveAllowlist(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	email := c.Param("email")
	if decoded, err := url.PathUnescape(email); err == nil {
		email = decoded
	}
	if err := uh.userService.RemoveAllowlist(c.Request.Context(), rd.UserID, email); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
