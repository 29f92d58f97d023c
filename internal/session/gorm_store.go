package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/types"
)

// GormStore keeps sessions in the relational store, so a bare Postgres
// deployment needs no extra infrastructure.
type GormStore struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewGormStore(db *gorm.DB, ttl time.Duration) *GormStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &GormStore{db: db, ttl: ttl}
}

func (s *GormStore) New(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	row := types.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", err
	}
	// Opportunistic reap; expired rows are already invisible to Get.
	s.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&types.Session{})
	return token, nil
}

func (s *GormStore) Get(ctx context.Context, token string) (int64, bool, error) {
	var row types.Session
	err := s.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return row.UserID, true, nil
}

func (s *GormStore) Renew(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).
		Model(&types.Session{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(s.ttl)).Error
}

func (s *GormStore) Delete(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&types.Session{}).Error
}
