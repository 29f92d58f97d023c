package types

import (
	"time"

	"github.com/harshastride/interview-coach/internal/curriculum"
)

// User rows are never physically deleted: the admin "remove user" operation
// only clears IsAllowed. IsAllowed is kept as an integer column (0/1) so the
// admin list payload matches what the UI has always consumed.
type User struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	GoogleID  string          `gorm:"uniqueIndex;not null;column:google_id" json:"-"`
	Email     string          `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name      string          `gorm:"not null;column:name" json:"name"`
	AvatarURL string          `gorm:"column:avatar_url" json:"avatar_url"`
	Role      curriculum.Role `gorm:"type:text;not null;default:'viewer';column:role" json:"role"`
	IsAllowed int             `gorm:"not null;default:0;column:is_allowed" json:"is_allowed"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
	LastLogin time.Time       `gorm:"not null;column:last_login" json:"last_login"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) Allowed() bool {
	return u.IsAllowed != 0
}
