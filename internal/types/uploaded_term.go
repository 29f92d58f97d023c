package types

import (
	"time"
)

// UploadedTerm is a curated flashcard row. The short column names (t, d, l, c)
// are the wire format the study UI consumes, kept as-is end to end.
type UploadedTerm struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Term     string    `gorm:"not null;column:t" json:"t"`
	Def      string    `gorm:"not null;column:d" json:"d"`
	Level    int       `gorm:"not null;column:l" json:"l"`
	Category string    `gorm:"not null;column:c" json:"c"`
	AddedBy  int64     `gorm:"column:added_by" json:"-"`
	AddedAt  time.Time `gorm:"not null;autoCreateTime;column:added_at" json:"added_at"`
}

func (UploadedTerm) TableName() string {
	return "uploaded_terms"
}
