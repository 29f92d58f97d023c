package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/repos"
	"github.com/harshastride/interview-coach/internal/types"
)

// AuditService durably records privileged mutations. A failed write is
// returned to the caller, never swallowed: a broken audit trail must surface
// as a server error.
type AuditService interface {
	Record(ctx context.Context, tx *gorm.DB, actorID int64, action, target string, detail map[string]interface{}) error
	ListRecent(ctx context.Context, limit int) ([]*repos.AuditRow, error)
}

type auditService struct {
	db        *gorm.DB
	log       *logger.Logger
	auditRepo repos.AuditRepo
}

func NewAuditService(db *gorm.DB, log *logger.Logger, auditRepo repos.AuditRepo) AuditService {
	serviceLog := log.With("service", "AuditService")
	return &auditService{db: db, log: serviceLog, auditRepo: auditRepo}
}

func (as *auditService) Record(ctx context.Context, tx *gorm.DB, actorID int64, action, target string, detail map[string]interface{}) error {
	row := &types.AuditLogEntry{
		PerformedBy: actorID,
		Action:      action,
		Target:      target,
	}
	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			return fmt.Errorf("marshal audit detail: %w", err)
		}
		row.Detail = raw
	}
	if err := as.auditRepo.Append(ctx, tx, row); err != nil {
		as.log.Error("Audit write failed", "action", action, "actor_id", actorID, "error", err)
		return fmt.Errorf("audit write: %w", err)
	}
	return nil
}

func (as *auditService) ListRecent(ctx context.Context, limit int) ([]*repos.AuditRow, error) {
	return as.auditRepo.ListRecent(ctx, nil, limit)
}
