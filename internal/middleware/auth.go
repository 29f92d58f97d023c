package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harshastride/interview-coach/internal/curriculum"
	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/requestdata"
	"github.com/harshastride/interview-coach/internal/services"
)

// SessionCookie is the name of the session cookie the browser carries.
const SessionCookie = "session_id"

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLog := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLog, authService: authService}
}

// Identify resolves the session cookie into request-scoped identity data and
// never aborts; the guards below decide whether the request proceeds.
func (am *AuthMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}
		user, ok, err := am.authService.ResolveSession(c.Request.Context(), token)
		if err != nil {
			am.log.Error("Session resolution failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		if !ok {
			c.Next()
			return
		}
		rd := &requestdata.RequestData{
			SessionToken: token,
			UserID:       user.ID,
			Email:        user.Email,
			Name:         user.Name,
			AvatarURL:    user.AvatarURL,
			Role:         user.Role,
			IsAllowed:    user.Allowed(),
		}
		c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

// RequireAuth admits any allowed identity.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if !rd.IsAllowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// RequireIdentified admits any authenticated identity, allowed or not. The
// access-request endpoint needs exactly this: its callers are signed in but
// not yet allowed.
func (am *AuthMiddleware) RequireIdentified() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.Next()
	}
}

// RequireAdmin admits admins only. It intentionally does not consult
// IsAllowed; a revoked admin can still administer (see DESIGN.md).
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if rd.Role != curriculum.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin only"})
			return
		}
		c.Next()
	}
}

// RequireUploader admits admins and managers.
func (am *AuthMiddleware) RequireUploader() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		if !rd.Role.CanUpload() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin or manager only"})
			return
		}
		c.Next()
	}
}
