package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/middleware"
	"github.com/harshastride/interview-coach/internal/requestdata"
	"github.com/harshastride/interview-coach/internal/services"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	log          *logger.Logger
	authService  services.AuthService
	oauthService services.GoogleOAuthService
	secureCookie bool
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService, oauthService services.GoogleOAuthService, secureCookie bool) *AuthHandler {
	handlerLog := log.With("handler", "AuthHandler")
	return &AuthHandler{
		log:          handlerLog,
		authService:  authService,
		oauthService: oauthService,
		secureCookie: secureCookie,
	}
}

// GoogleLogin starts the browser-redirect flow. The state nonce round-trips
// through a short-lived cookie.
func (ah *AuthHandler) GoogleLogin(c *gin.Context) {
	if !ah.oauthService.Configured() {
		c.String(http.StatusServiceUnavailable, "OAuth not configured. Set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET in .env")
		return
	}
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 300, "/", "", ah.secureCookie, true)
	c.Redirect(http.StatusFound, ah.oauthService.AuthCodeURL(state))
}

// GoogleCallback terminates the provider round trip: resolve the login,
// grant a session and send the browser to the app (or the denied page).
func (ah *AuthHandler) GoogleCallback(c *gin.Context) {
	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || c.Query("state") != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	profile, err := ah.oauthService.FetchProfile(c.Request.Context(), code)
	if err != nil {
		ah.log.Error("OAuth profile fetch failed", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed"})
		return
	}

	user, err := ah.authService.ResolveLogin(c.Request.Context(), profile)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := ah.authService.IssueSession(c.Request.Context(), user.ID)
	if err != nil {
		ah.log.Error("Session issue failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	maxAge := int(ah.authService.SessionTTL().Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", ah.secureCookie, true)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", ah.secureCookie, true)

	if user.Allowed() {
		c.Redirect(http.StatusFound, "/")
	} else {
		c.Redirect(http.StatusFound, "/access-denied")
	}
}

// Me reports the current identity without requiring one.
func (ah *AuthHandler) Me(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":         rd.UserID,
			"email":      rd.Email,
			"name":       rd.Name,
			"avatar_url": rd.AvatarURL,
			"role":       rd.Role,
			"isAllowed":  rd.IsAllowed,
		},
	})
}

func (ah *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(middleware.SessionCookie)
	if err == nil && token != "" {
		if err := ah.authService.Logout(c.Request.Context(), token); err != nil {
			ah.log.Error("Logout failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ah.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
