package types

import (
	"time"
)

// Session is the Postgres-backed session row used when no Redis address is
// configured. Expired rows are ignored on read and reaped opportunistically.
type Session struct {
	Token     string    `gorm:"primaryKey;column:token" json:"-"`
	UserID    int64     `gorm:"not null;index;column:user_id" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null;index;column:expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
}

func (Session) TableName() string {
	return "session"
}
