package types

import (
	"time"
)

// AllowlistEntry authorizes an email before its owner has ever logged in.
// Re-adding an email refreshes AddedBy/AddedAt rather than erroring.
type AllowlistEntry struct {
	Email   string    `gorm:"primaryKey;column:email" json:"email"`
	AddedBy int64     `gorm:"column:added_by" json:"added_by"`
	AddedAt time.Time `gorm:"not null;autoCreateTime;column:added_at" json:"added_at"`
}

func (AllowlistEntry) TableName() string {
	return "email_allowlist"
}
