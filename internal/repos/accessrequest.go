package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/types"
)

type AccessRequestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.AccessRequest) (*types.AccessRequest, error)
	GetPendingByID(ctx context.Context, tx *gorm.DB, id int64) (*types.AccessRequest, error)
	ListPending(ctx context.Context, tx *gorm.DB) ([]*types.AccessRequest, error)
	SetStatus(ctx context.Context, tx *gorm.DB, id int64, status string) error
}

type accessRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccessRequestRepo(db *gorm.DB, baseLog *logger.Logger) AccessRequestRepo {
	repoLog := baseLog.With("repo", "AccessRequestRepo")
	return &accessRequestRepo{db: db, log: repoLog}
}

func (r *accessRequestRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AccessRequest) (*types.AccessRequest, error) {
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

// GetPendingByID returns nil when the row is absent or no longer pending, so
// approving or rejecting a settled request reads as not-found.
func (r *accessRequestRepo) GetPendingByID(ctx context.Context, tx *gorm.DB, id int64) (*types.AccessRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.AccessRequest
	err := transaction.WithContext(ctx).
		Where("id = ? AND status = ?", id, types.AccessRequestPending).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *accessRequestRepo) ListPending(ctx context.Context, tx *gorm.DB) ([]*types.AccessRequest, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.AccessRequest
	if err := transaction.WithContext(ctx).
		Where("status = ?", types.AccessRequestPending).
		Order("requested_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *accessRequestRepo) SetStatus(ctx context.Context, tx *gorm.DB, id int64, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.AccessRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}
