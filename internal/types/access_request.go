package types

import (
	"time"
)

const (
	AccessRequestPending  = "pending"
	AccessRequestApproved = "approved"
	AccessRequestRejected = "rejected"
)

// AccessRequest bridges a signed-in-but-disallowed identity into the
// allowlist. pending -> approved and pending -> rejected are both terminal.
type AccessRequest struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email       string    `gorm:"not null;column:email" json:"email"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Reason      string    `gorm:"column:reason" json:"reason"`
	Status      string    `gorm:"not null;default:'pending';column:status" json:"status"`
	RequestedAt time.Time `gorm:"not null;autoCreateTime;column:requested_at" json:"requested_at"`
}

func (AccessRequest) TableName() string {
	return "access_requests"
}
