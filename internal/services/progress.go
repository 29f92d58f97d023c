package services

import (
	"context"
	"math"

	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/repos"
	"github.com/harshastride/interview-coach/internal/types"
)

// ProgressInput is the raw snapshot payload. Numbers arrive as float64 so
// fractional or out-of-range values can be coerced instead of rejected.
type ProgressInput struct {
	Module            string  `json:"module"`
	TotalTerms        float64 `json:"total_terms"`
	CompletedTerms    float64 `json:"completed_terms"`
	QuizCorrect       float64 `json:"quiz_correct"`
	QuizIncorrect     float64 `json:"quiz_incorrect"`
	InterviewTotal    float64 `json:"interview_total"`
	InterviewAnswered float64 `json:"interview_answered"`
}

type ProgressService interface {
	// Save coerces and clamps the snapshot, then upserts it keyed on user id.
	// It never rejects beyond a malformed body.
	Save(ctx context.Context, userID int64, input ProgressInput) error
	Dashboard(ctx context.Context) ([]*repos.DashboardRow, error)
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.ProgressRepo
}

func NewProgressService(db *gorm.DB, log *logger.Logger, progressRepo repos.ProgressRepo) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{db: db, log: serviceLog, progressRepo: progressRepo}
}

func asNonNegInt(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	n := int(math.Floor(v))
	if n < 0 {
		return 0
	}
	return n
}

func (ps *progressService) Save(ctx context.Context, userID int64, input ProgressInput) error {
	module := input.Module
	if module == "" {
		module = "home"
	}
	if len(module) > 32 {
		module = module[:32]
	}

	totalTerms := asNonNegInt(input.TotalTerms)
	completedTerms := asNonNegInt(input.CompletedTerms)
	if completedTerms > totalTerms {
		completedTerms = totalTerms
	}
	interviewTotal := asNonNegInt(input.InterviewTotal)
	interviewAnswered := asNonNegInt(input.InterviewAnswered)
	if interviewAnswered > interviewTotal {
		interviewAnswered = interviewTotal
	}

	return ps.progressRepo.Upsert(ctx, nil, &types.UserProgress{
		UserID:            userID,
		Module:            module,
		TotalTerms:        totalTerms,
		CompletedTerms:    completedTerms,
		QuizCorrect:       asNonNegInt(input.QuizCorrect),
		QuizIncorrect:     asNonNegInt(input.QuizIncorrect),
		InterviewTotal:    interviewTotal,
		InterviewAnswered: interviewAnswered,
	})
}

func (ps *progressService) Dashboard(ctx context.Context) ([]*repos.DashboardRow, error) {
	rows, err := ps.progressRepo.DashboardRows(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.FlashcardCompletionPct = completionPct(row.CompletedTerms, row.TotalTerms)
		row.InterviewCompletionPct = completionPct(row.InterviewAnswered, row.InterviewTotal)
	}
	return rows, nil
}

// completionPct is round(done/total*100, 1), 0 when total is absent or zero.
func completionPct(done, total *int) float64 {
	if done == nil || total == nil || *total <= 0 {
		return 0
	}
	return math.Round(float64(*done)/float64(*total)*1000) / 10
}
