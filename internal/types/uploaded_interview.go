package types

import (
	"time"
)

// UploadedInterview is a curated interview Q&A row. Question uniqueness is
// enforced by the bulk-import pre-check, not by a storage constraint.
type UploadedInterview struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Question    string    `gorm:"not null;column:question" json:"question"`
	IdealAnswer string    `gorm:"not null;column:ideal_answer" json:"ideal_answer"`
	Role        string    `gorm:"not null;column:role" json:"role"`
	Company     string    `gorm:"not null;column:company" json:"company"`
	AddedBy     int64     `gorm:"column:added_by" json:"-"`
	AddedAt     time.Time `gorm:"not null;autoCreateTime;column:added_at" json:"added_at"`
}

func (UploadedInterview) TableName() string {
	return "uploaded_interview"
}
