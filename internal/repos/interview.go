package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/types"
)

type InterviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.UploadedInterview) (*types.UploadedInterview, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.UploadedInterview, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error
	ListNewestFirst(ctx context.Context, tx *gorm.DB) ([]*types.UploadedInterview, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.UploadedInterview, error)
	ListQuestions(ctx context.Context, tx *gorm.DB) ([]string, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type interviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInterviewRepo(db *gorm.DB, baseLog *logger.Logger) InterviewRepo {
	repoLog := baseLog.With("repo", "InterviewRepo")
	return &interviewRepo{db: db, log: repoLog}
}

func (r *interviewRepo) Create(ctx context.Context, tx *gorm.DB, row *types.UploadedInterview) (*types.UploadedInterview, error) {
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

func (r *interviewRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.UploadedInterview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UploadedInterview
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

func (r *interviewRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id int64) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.UploadedInterview{}).Error
}

func (r *interviewRepo) ListNewestFirst(ctx context.Context, tx *gorm.DB) ([]*types.UploadedInterview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UploadedInterview
	if err := transaction.WithContext(ctx).
		Order("added_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *interviewRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.UploadedInterview, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UploadedInterview
	if err := transaction.WithContext(ctx).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *interviewRepo) ListQuestions(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []string
	if err := transaction.WithContext(ctx).
		Model(&types.UploadedInterview{}).
		Pluck("question", &results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *interviewRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UploadedInterview{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
