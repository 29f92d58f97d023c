package types

import (
	"time"
)

// UserProgress is the single snapshot per user; UserID is the primary key and
// every write overwrites the full row. Clamping (completed <= total) is done
// by the writer, not by the schema.
type UserProgress struct {
	UserID            int64     `gorm:"primaryKey;column:user_id" json:"user_id"`
	Module            string    `gorm:"not null;default:'home';column:module" json:"module"`
	TotalTerms        int       `gorm:"not null;default:0;column:total_terms" json:"total_terms"`
	CompletedTerms    int       `gorm:"not null;default:0;column:completed_terms" json:"completed_terms"`
	QuizCorrect       int       `gorm:"not null;default:0;column:quiz_correct" json:"quiz_correct"`
	QuizIncorrect     int       `gorm:"not null;default:0;column:quiz_incorrect" json:"quiz_incorrect"`
	InterviewTotal    int       `gorm:"not null;default:0;column:interview_total" json:"interview_total"`
	InterviewAnswered int       `gorm:"not null;default:0;column:interview_answered" json:"interview_answered"`
	UpdatedAt         time.Time `gorm:"not null;autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
