package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/types"
)

type TtsCacheRepo interface {
	Get(ctx context.Context, tx *gorm.DB, term string) (*types.TtsCacheEntry, error)
	Upsert(ctx context.Context, tx *gorm.DB, term string, audio []byte) error
}

type ttsCacheRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTtsCacheRepo(db *gorm.DB, baseLog *logger.Logger) TtsCacheRepo {
	repoLog := baseLog.With("repo", "TtsCacheRepo")
	return &ttsCacheRepo{db: db, log: repoLog}
}

func (r *ttsCacheRepo) Get(ctx context.Context, tx *gorm.DB, term string) (*types.TtsCacheEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.TtsCacheEntry
	err := transaction.WithContext(ctx).
		Where("term = ?", term).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ttsCacheRepo) Upsert(ctx context.Context, tx *gorm.DB, term string, audio []byte) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	entry := types.TtsCacheEntry{
		Term:      term,
		AudioData: audio,
		CreatedAt: time.Now(),
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "term"}},
			DoUpdates: clause.AssignmentColumns([]string{"audio_data", "created_at"}),
		}).
		Create(&entry).Error
}
