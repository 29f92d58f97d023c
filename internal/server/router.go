package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/harshastride/interview-coach/internal/handlers"
	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/middleware"
	"github.com/harshastride/interview-coach/internal/ratelimit"
)

type RouterConfig struct {
	Log                  *logger.Logger
	AuthHandler          *handlers.AuthHandler
	AuthMiddleware       *middleware.AuthMiddleware
	ProgressHandler      *handlers.ProgressHandler
	ContentHandler       *handlers.ContentHandler
	TtsHandler           *handlers.TtsHandler
	AccessRequestHandler *handlers.AccessRequestHandler
	AdminUsersHandler    *handlers.AdminUsersHandler
	AdminContentHandler  *handlers.AdminContentHandler
	AuditHandler         *handlers.AuditHandler
	AllowedOrigins       []string
	AuthLimiter          *ratelimit.FixedWindowLimiter
	UploadLimiter        *ratelimit.FixedWindowLimiter
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Every route sees the resolved identity; guards below decide access.
	router.Use(cfg.AuthMiddleware.Identify())

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	auth := router.Group("/auth")
	auth.Use(middleware.RateLimit(cfg.Log, cfg.AuthLimiter, "auth"))
	{
		auth.GET("/google", cfg.AuthHandler.GoogleLogin)
		auth.GET("/google/callback", cfg.AuthHandler.GoogleCallback)
	}

	api := router.Group("/api")
	api.GET("/auth/me", cfg.AuthHandler.Me)
	api.POST("/auth/logout", cfg.AuthHandler.Logout)

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Progress
	protected.POST("/progress", cfg.ProgressHandler.Save)
	// Content
	protected.GET("/content/terms", cfg.ContentHandler.Terms)
	protected.GET("/content/interview", cfg.ContentHandler.Interview)
	// TTS cache
	protected.GET("/tts/:term", cfg.TtsHandler.Get)
	protected.POST("/tts", cfg.TtsHandler.Save)

	// Signed in but not necessarily allowed: this is how locked-out users
	// ask to be let in.
	identified := api.Group("/")
	identified.Use(cfg.AuthMiddleware.RequireIdentified())
	identified.POST("/access-request", cfg.AccessRequestHandler.Create)

	// ===============
	// || Admin     ||
	// ===============
	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	// Users
	admin.GET("/users", cfg.AdminUsersHandler.List)
	admin.PATCH("/users/:id", cfg.AdminUsersHandler.Patch)
	admin.DELETE("/users/:id", cfg.AdminUsersHandler.Delete)
	// Allowlist
	admin.GET("/allowlist", cfg.AdminUsersHandler.ListAllowlist)
	admin.POST("/allowlist", cfg.AdminUsersHandler.AddAllowlist)
	admin.DELETE("/allowlist/:email", cfg.AdminUsersHandler.RemoveAllowlist)
	// Access requests
	admin.GET("/requests", cfg.AccessRequestHandler.ListPending)
	admin.POST("/requests/:id/approve", cfg.AccessRequestHandler.Approve)
	admin.POST("/requests/:id/reject", cfg.AccessRequestHandler.Reject)
	// Audit
	admin.GET("/audit", cfg.AuditHandler.List)

	// ===============
	// || Uploader  ||
	// ===============
	uploader := api.Group("/admin")
	uploader.Use(cfg.AuthMiddleware.RequireUploader())
	uploader.GET("/progress", cfg.ProgressHandler.Dashboard)
	// Terms
	uploader.GET("/terms", cfg.AdminContentHandler.ListTerms)
	uploader.POST("/terms", middleware.RateLimit(cfg.Log, cfg.UploadLimiter, "upload"), cfg.AdminContentHandler.CreateTerm)
	uploader.POST("/terms/bulk", middleware.RateLimit(cfg.Log, cfg.UploadLimiter, "upload"), cfg.AdminContentHandler.BulkCreateTerms)
	uploader.DELETE("/terms/:id", cfg.AdminContentHandler.DeleteTerm)
	// Interview
	uploader.GET("/interview", cfg.AdminContentHandler.ListInterview)
	uploader.POST("/interview", middleware.RateLimit(cfg.Log, cfg.UploadLimiter, "upload"), cfg.AdminContentHandler.CreateInterview)
	uploader.POST("/interview/bulk", middleware.RateLimit(cfg.Log, cfg.UploadLimiter, "upload"), cfg.AdminContentHandler.BulkCreateInterview)
	uploader.DELETE("/interview/:id", cfg.AdminContentHandler.DeleteInterview)

	return router
}
