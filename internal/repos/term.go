package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/types"
)

type TermRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.UploadedTerm) (*types.UploadedTerm, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.UploadedTerm, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error
	ListNewestFirst(ctx context.Context, tx *gorm.DB) ([]*types.UploadedTerm, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.UploadedTerm, error)
}

type termRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTermRepo(db *gorm.DB, baseLog *logger.Logger) TermRepo {
	repoLog := baseLog.With("repo", "TermRepo")
	return &termRepo{db: db, log: repoLog}
}

func (r *termRepo) Create(ctx context.Context, tx *gorm.DB, row *types.UploadedTerm) (*types.UploadedTerm, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *termRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.UploadedTerm, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UploadedTerm
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *termRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.UploadedTerm{}).Error
}

func (r *termRepo) ListNewestFirst(ctx context.Context, tx *gorm.DB) ([]*types.UploadedTerm, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UploadedTerm
	if err := transaction.WithContext(ctx).
		Order("added_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *termRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.UploadedTerm, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UploadedTerm
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
