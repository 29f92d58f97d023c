package types

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLogEntry is append-only; rows are never updated or deleted.
type AuditLogEntry struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	PerformedBy int64          `gorm:"column:performed_by" json:"performed_by"`
	Action      string         `gorm:"not null;column:action" json:"action"`
	Target      string         `gorm:"column:target" json:"target"`
	Detail      datatypes.JSON `gorm:"column:detail" json:"detail,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
}

func (AuditLogEntry) TableName() string {
	return "audit_log"
}
