package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/types"
)

// AuditRow is the read-side projection: the raw entry left-joined with the
// actor's email for display.
type AuditRow struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	Target     string    `json:"target"`
	Detail     []byte    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ActorEmail string    `json:"actor_email"`
}

type AuditRepo interface {
	Append(ctx context.Context, tx *gorm.DB, row *types.AuditLogEntry) error
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*AuditRow, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type auditRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditRepo(db *gorm.DB, baseLog *logger.Logger) AuditRepo {
	repoLog := baseLog.With("repo", "AuditRepo")
	return &auditRepo{db: db, log: repoLog}
}

func (r *auditRepo) Append(ctx context.Context, tx *gorm.DB, row *types.AuditLogEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}
	return transaction.WithContext(ctx).Create(row).Error
}

func (r *auditRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*AuditRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 {
		limit = 100
	}

	var results []*AuditRow
	if err := transaction.WithContext(ctx).
		Raw(`SELECT a.id, a.action, a.target, a.detail, a.created_at, u.email AS actor_email
		     FROM audit_log a LEFT JOIN users u ON a.performed_by = u.id
		     ORDER BY a.created_at DESC, a.id DESC LIMIT ?`, limit).
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *auditRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AuditLogEntry{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
