package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/repos"
	"github.com/harshastride/interview-coach/internal/session"
	"github.com/harshastride/interview-coach/internal/types"
)

var testDBSeq atomic.Int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&types.User{},
		&types.AllowlistEntry{},
		&types.UploadedTerm{},
		&types.UploadedInterview{},
		&types.AccessRequest{},
		&types.AuditLogEntry{},
		&types.UserProgress{},
		&types.TtsCacheEntry{},
		&types.Session{},
	)
	if err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// env bundles the wired stack the individual tests exercise.
type env struct {
	db *gorm.DB

	userRepo      repos.UserRepo
	allowlistRepo repos.AllowlistRepo
	termRepo      repos.TermRepo
	interviewRepo repos.InterviewRepo
	requestRepo   repos.AccessRequestRepo
	auditRepo     repos.AuditRepo
	progressRepo  repos.ProgressRepo
	ttsRepo       repos.TtsCacheRepo

	auditService    AuditService
	authService     AuthService
	userService     UserService
	contentService  ContentService
	progressService ProgressService
	requestService  AccessRequestService
	ttsService      TtsService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := openTestDB(t)
	log := testLogger()

	e := &env{db: db}
	e.userRepo = repos.NewUserRepo(db, log)
	e.allowlistRepo = repos.NewAllowlistRepo(db, log)
	e.termRepo = repos.NewTermRepo(db, log)
	e.interviewRepo = repos.NewInterviewRepo(db, log)
	e.requestRepo = repos.NewAccessRequestRepo(db, log)
	e.auditRepo = repos.NewAuditRepo(db, log)
	e.progressRepo = repos.NewProgressRepo(db, log)
	e.ttsRepo = repos.NewTtsCacheRepo(db, log)

	e.auditService = NewAuditService(db, log, e.auditRepo)
	e.authService = NewAuthService(db, log, e.userRepo, e.allowlistRepo, session.NewGormStore(db, 0), 0)
	e.userService = NewUserService(db, log, e.userRepo, e.allowlistRepo, e.auditService)
	e.contentService = NewContentService(db, log, e.termRepo, e.interviewRepo, e.auditService)
	e.progressService = NewProgressService(db, log, e.progressRepo)
	e.requestService = NewAccessRequestService(db, log, e.requestRepo, e.allowlistRepo, e.userRepo, e.auditService)
	e.ttsService = NewTtsService(db, log, e.ttsRepo)
	return e
}

func (e *env) mustLogin(t *testing.T, subject, email string) *types.User {
	t.Helper()
	user, err := e.authService.ResolveLogin(context.Background(), GoogleProfile{
		Subject: subject,
		Email:   email,
		Name:    "Test User",
	})
	if err != nil {
		t.Fatalf("resolve login %s: %v", email, err)
	}
	return user
}

func errorsIsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func (e *env) lastAuditAction(t *testing.T) string {
	t.Helper()
	rows, err := e.auditService.ListRecent(context.Background(), 1)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(rows) == 0 {
		return ""
	}
	return rows[0].Action
}
