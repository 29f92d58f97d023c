package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/harshastride/interview-coach/internal/db"
	"github.com/harshastride/interview-coach/internal/handlers"
	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/middleware"
	"github.com/harshastride/interview-coach/internal/ratelimit"
	"github.com/harshastride/interview-coach/internal/repos"
	"github.com/harshastride/interview-coach/internal/server"
	"github.com/harshastride/interview-coach/internal/services"
	"github.com/harshastride/interview-coach/internal/session"
	"github.com/harshastride/interview-coach/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	appURL := utils.GetEnv("APP_URL", "http://localhost:8080", log)
	googleClientID := utils.GetEnv("GOOGLE_CLIENT_ID", "", log)
	googleClientSecret := utils.GetEnv("GOOGLE_CLIENT_SECRET", "", log)
	sessionTTLHours := utils.GetEnvAsInt("SESSION_TTL_HOURS", int(session.DefaultTTL.Hours()), log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)
	authRateLimit := utils.GetEnvAsInt("AUTH_RATE_LIMIT", 20, log)
	uploadRateLimit := utils.GetEnvAsInt("UPLOAD_RATE_LIMIT", 50, log)
	corsOrigins := utils.GetEnv("CORS_ORIGINS", "", log)
	secureCookies := utils.GetEnv("SECURE_COOKIES", "false", log) == "true"

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	allowlistRepo := repos.NewAllowlistRepo(thePG, log)
	termRepo := repos.NewTermRepo(thePG, log)
	interviewRepo := repos.NewInterviewRepo(thePG, log)
	accessRequestRepo := repos.NewAccessRequestRepo(thePG, log)
	auditRepo := repos.NewAuditRepo(thePG, log)
	progressRepo := repos.NewProgressRepo(thePG, log)
	ttsCacheRepo := repos.NewTtsCacheRepo(thePG, log)

	// Sessions
	ttl := time.Duration(sessionTTLHours) * time.Hour
	var sessionStore session.Store
	if redisAddr != "" {
		log.Info("Using Redis session store", "addr", redisAddr)
		sessionStore = session.NewRedisStore(redisAddr, redisPassword, ttl)
	} else {
		sessionStore = session.NewGormStore(thePG, ttl)
	}

	// Rate limiters (only with Redis configured)
	var authLimiter, uploadLimiter *ratelimit.FixedWindowLimiter
	if redisAddr != "" {
		authLimiter, err = ratelimit.NewRedisFixedWindowLimiter(redisAddr, redisPassword, "", authRateLimit, 15*time.Minute)
		if err != nil {
			log.Error("Could not init auth rate limiter", "error", err)
			os.Exit(1)
		}
		uploadLimiter, err = ratelimit.NewRedisFixedWindowLimiter(redisAddr, redisPassword, "", uploadRateLimit, time.Hour)
		if err != nil {
			log.Error("Could not init upload rate limiter", "error", err)
			os.Exit(1)
		}
	}

	// Services
	log.Info("Setting up Services from main...")
	auditService := services.NewAuditService(thePG, log, auditRepo)
	authService := services.NewAuthService(thePG, log, userRepo, allowlistRepo, sessionStore, ttl)
	oauthService := services.NewGoogleOAuthService(log, googleClientID, googleClientSecret, appURL)
	userService := services.NewUserService(thePG, log, userRepo, allowlistRepo, auditService)
	contentService := services.NewContentService(thePG, log, termRepo, interviewRepo, auditService)
	progressService := services.NewProgressService(thePG, log, progressRepo)
	requestService := services.NewAccessRequestService(thePG, log, accessRequestRepo, allowlistRepo, userRepo, auditService)
	ttsService := services.NewTtsService(thePG, log, ttsCacheRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(log, authService, oauthService, secureCookies)
	progressHandler := handlers.NewProgressHandler(progressService)
	contentHandler := handlers.NewContentHandler(contentService)
	ttsHandler := handlers.NewTtsHandler(ttsService)
	accessRequestHandler := handlers.NewAccessRequestHandler(requestService)
	adminUsersHandler := handlers.NewAdminUsersHandler(userService)
	adminContentHandler := handlers.NewAdminContentHandler(contentService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	var origins []string
	if corsOrigins != "" {
		for _, origin := range strings.Split(corsOrigins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}
	router := server.NewRouter(server.RouterConfig{
		Log:                  log,
		AuthHandler:          authHandler,
		AuthMiddleware:       authMiddleware,
		ProgressHandler:      progressHandler,
		ContentHandler:       contentHandler,
		TtsHandler:           ttsHandler,
		AccessRequestHandler: accessRequestHandler,
		AdminUsersHandler:    adminUsersHandler,
		AdminContentHandler:  adminContentHandler,
		AuditHandler:         auditHandler,
		AllowedOrigins:       origins,
		AuthLimiter:          authLimiter,
		UploadLimiter:        uploadLimiter,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
