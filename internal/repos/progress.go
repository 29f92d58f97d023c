package repos

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/types"
)

// DashboardRow joins a user with their (possibly absent) snapshot. Pointer
// fields stay nil for users who have never posted progress.
type DashboardRow struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Role              string     `json:"role"`
	IsAllowed         int        `json:"is_allowed"`
	LastLogin         *time.Time `json:"last_login"`
	Module            *string    `json:"module"`
	TotalTerms        *int       `json:"total_terms"`
	CompletedTerms    *int       `json:"completed_terms"`
	QuizCorrect       *int       `json:"quiz_correct"`
	QuizIncorrect     *int       `json:"quiz_incorrect"`
	InterviewTotal    *int       `json:"interview_total"`
	InterviewAnswered *int       `json:"interview_answered"`
	UpdatedAt         *time.Time `json:"updated_at"`

	FlashcardCompletionPct float64 `gorm:"-" json:"flashcard_completion_pct"`
	InterviewCompletionPct float64 `gorm:"-" json:"interview_completion_pct"`
}

type ProgressRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.UserProgress) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID int64) (*types.UserProgress, error)
	DashboardRows(ctx context.Context, tx *gorm.DB) ([]*DashboardRow, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	repoLog := baseLog.With("repo", "ProgressRepo")
	return &progressRepo{db: db, log: repoLog}
}

// Upsert is a single atomic insert-or-overwrite keyed on user_id, so two
// concurrent posts for the same user cannot interleave a read-modify-write.
func (r *progressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UserProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}
	row.UpdatedAt = time.Now()
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"module", "total_terms", "completed_terms", "quiz_correct",
				"quiz_incorrect", "interview_total", "interview_answered", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *progressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID int64) (*types.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UserProgress
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DashboardRows orders by most recent activity, falling back to last login,
// then account creation. Completion percentages are filled in by the service.
func (r *progressRepo) DashboardRows(ctx context.Context, tx *gorm.DB) ([]*DashboardRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*DashboardRow
	if err := transaction.WithContext(ctx).
		Raw(`SELECT
		       u.id, u.name, u.email, u.role, u.is_allowed, u.last_login,
		       p.module, p.total_terms, p.completed_terms,
		       p.quiz_correct, p.quiz_incorrect,
		       p.interview_total, p.interview_answered, p.updated_at
		     FROM users u
		     LEFT JOIN user_progress p ON p.user_id = u.id
		     ORDER BY COALESCE(p.updated_at, u.last_login, u.created_at) DESC`).
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
