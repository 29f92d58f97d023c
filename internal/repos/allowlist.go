package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/types"
)

type AllowlistRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, email string, addedBy int64) error
	Delete(ctx context.Context, tx *gorm.DB, email string) error
	Exists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.AllowlistEntry, error)
}

type allowlistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAllowlistRepo(db *gorm.DB, baseLog *logger.Logger) AllowlistRepo {
	repoLog := baseLog.With("repo", "AllowlistRepo")
	return &allowlistRepo{db: db, log: repoLog}
}

// Upsert is an atomic insert-or-refresh on the email key, so re-adding an
// email updates added_by/added_at instead of erroring.
func (r *allowlistRepo) Upsert(ctx context.Context, tx *gorm.DB, email string, addedBy int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	entry := types.AllowlistEntry{
		Email:   email,
		AddedBy: addedBy,
		AddedAt: time.Now(),
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"added_by", "added_at"}),
		}).
		Create(&entry).Error
}

func (r *allowlistRepo) Delete(ctx context.Context, tx *gorm.DB, email string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("email = ?", email).
		Delete(&types.AllowlistEntry{}).Error
}

func (r *allowlistRepo) Exists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AllowlistEntry{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *allowlistRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.AllowlistEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AllowlistEntry
	if err := transaction.WithContext(ctx).
		Order("added_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
