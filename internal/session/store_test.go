package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/harshastride/interview-coach/internal/types"
)

func openSessionDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:sessiontest?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Where("1 = 1").Delete(&types.Session{})
	})
	return db
}

func TestGormStore_NewAndGet(t *testing.T) {
	store := NewGormStore(openSessionDB(t), time.Hour)
	ctx := context.Background()

	token, err := store.New(ctx, 42)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	userID, ok, err := store.Get(ctx, token)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestGormStore_ExpiredTokenInvisible(t *testing.T) {
	store := NewGormStore(openSessionDB(t), time.Nanosecond)
	ctx := context.Background()

	token, err := store.New(ctx, 7)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	_, ok, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected expired token to miss")
	}
}

func TestGormStore_Delete(t *testing.T) {
	store := NewGormStore(openSessionDB(t), time.Hour)
	ctx := context.Background()

	token, _ := store.New(ctx, 9)
	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, ok, _ := store.Get(ctx, token)
	if ok {
		t.Fatalf("expected deleted token to miss")
	}
}

func TestGormStore_Renew(t *testing.T) {
	store := NewGormStore(openSessionDB(t), 50*time.Millisecond)
	ctx := context.Background()

	token, _ := store.New(ctx, 3)
	time.Sleep(30 * time.Millisecond)
	if err := store.Renew(ctx, token); err != nil {
		t.Fatalf("renew: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	_, ok, _ := store.Get(ctx, token)
	if !ok {
		t.Fatalf("expected renewed token to outlive the first deadline")
	}
}

func TestRedisStore_NewAndGet(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "", time.Hour)
	ctx := context.Background()

	token, err := store.New(ctx, 42)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	userID, ok, err := store.Get(ctx, token)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "", time.Minute)
	ctx := context.Background()

	token, _ := store.New(ctx, 5)
	mr.FastForward(2 * time.Minute)
	_, ok, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected expired token to miss")
	}
}

func TestRedisStore_Delete(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(mr.Addr(), "", time.Hour)
	ctx := context.Background()

	token, _ := store.New(ctx, 5)
	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, ok, _ := store.Get(ctx, token)
	if ok {
		t.Fatalf("expected deleted token to miss")
	}
}
