package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/curriculum"
	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/repos"
	"github.com/harshastride/interview-coach/internal/types"
)

// TermInput is one candidate flashcard row.
type TermInput struct {
	Term     string `json:"t"`
	Def      string `json:"d"`
	Level    int    `json:"l"`
	Category string `json:"c"`
}

// QAInput is one candidate interview row of a bulk import.
type QAInput struct {
	Question    string `json:"question"`
	IdealAnswer string `json:"ideal_answer"`
}

// StudyTerm is the projection the learning UI consumes: no id, no timestamp.
type StudyTerm struct {
	Term     string `json:"t"`
	Def      string `json:"d"`
	Level    int    `json:"l"`
	Category string `json:"c"`
}

// StudyInterview is the interview projection for the learning UI.
type StudyInterview struct {
	Question    string `json:"question"`
	IdealAnswer string `json:"ideal_answer"`
	Role        string `json:"role"`
	Company     string `json:"company"`
}

type ContentService interface {
	CreateTerm(ctx context.Context, actorID int64, input TermInput) error
	// BulkCreateTerms skips invalid rows rather than rejecting the batch and
	// reports how many rows were actually written.
	BulkCreateTerms(ctx context.Context, actorID int64, entries []TermInput) (int, error)
	ListTermsAdmin(ctx context.Context) ([]*types.UploadedTerm, error)
	ListTermsStudy(ctx context.Context) ([]StudyTerm, error)
	DeleteTerm(ctx context.Context, actorID, id int64) error

	CreateInterview(ctx context.Context, actorID int64, question, idealAnswer, role, company string) error
	// BulkCreateInterviews is all-or-nothing: any duplicate question (case
	// and whitespace insensitive against the stored set) rejects the whole
	// batch with a DuplicateQuestionsError and nothing is written.
	BulkCreateInterviews(ctx context.Context, actorID int64, role, company string, entries []QAInput) (int, error)
	ListInterviewAdmin(ctx context.Context) ([]*types.UploadedInterview, error)
	ListInterviewStudy(ctx context.Context) ([]StudyInterview, error)
	DeleteInterview(ctx context.Context, actorID, id int64) error
}

type contentService struct {
	db            *gorm.DB
	log           *logger.Logger
	termRepo      repos.TermRepo
	interviewRepo repos.InterviewRepo
	auditService  AuditService
}

func NewContentService(
	db *gorm.DB,
	log *logger.Logger,
	termRepo repos.TermRepo,
	interviewRepo repos.InterviewRepo,
	auditService AuditService,
) ContentService {
	serviceLog := log.With("service", "ContentService")
	return &contentService{
		db:            db,
		log:           serviceLog,
		termRepo:      termRepo,
		interviewRepo: interviewRepo,
		auditService:  auditService,
	}
}

func validateTerm(input TermInput) (TermInput, error) {
	input.Term = strings.TrimSpace(input.Term)
	input.Def = strings.TrimSpace(input.Def)
	input.Category = strings.TrimSpace(input.Category)
	if input.Term == "" || input.Def == "" || input.Category == "" {
		return input, validationError("term, definition, category required")
	}
	if !curriculum.ValidLevel(input.Level) {
		return input, validationError("level must be 2, 3, 4, or 5")
	}
	if !curriculum.ValidCategory(input.Category) {
		return input, validationError("invalid category")
	}
	return input, nil
}

func (cs *contentService) CreateTerm(ctx context.Context, actorID int64, input TermInput) error {
	validated, err := validateTerm(input)
	if err != nil {
		return err
	}
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := cs.termRepo.Create(ctx, tx, &types.UploadedTerm{
			Term:     validated.Term,
			Def:      validated.Def,
			Level:    validated.Level,
			Category: validated.Category,
			AddedBy:  actorID,
		}); err != nil {
			return fmt.Errorf("create term: %w", err)
		}
		return cs.auditService.Record(ctx, tx, actorID, "upload_term", validated.Term, nil)
	})
}

func (cs *contentService) BulkCreateTerms(ctx context.Context, actorID int64, entries []TermInput) (int, error) {
	imported := 0
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			validated, err := validateTerm(entry)
			if err != nil {
				// Best-effort import: bad rows are skipped, not fatal.
				continue
			}
			if _, err := cs.termRepo.Create(ctx, tx, &types.UploadedTerm{
				Term:     validated.Term,
				Def:      validated.Def,
				Level:    validated.Level,
				Category: validated.Category,
				AddedBy:  actorID,
			}); err != nil {
				return fmt.Errorf("create term: %w", err)
			}
			imported++
		}
		return cs.auditService.Record(ctx, tx, actorID, "upload_terms_bulk", fmt.Sprint(len(entries)), nil)
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

func (cs *contentService) ListTermsAdmin(ctx context.Context) ([]*types.UploadedTerm, error) {
	return cs.termRepo.ListNewestFirst(ctx, nil)
}

func (cs *contentService) ListTermsStudy(ctx context.Context) ([]StudyTerm, error) {
	rows, err := cs.termRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]StudyTerm, 0, len(rows))
	for _, row := range rows {
		out = append(out, StudyTerm{
			Term:     row.Term,
			Def:      row.Def,
			Level:    row.Level,
			Category: row.Category,
		})
	}
	return out, nil
}

func (cs *contentService) DeleteTerm(ctx context.Context, actorID, id int64) error {
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := cs.termRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("lookup term: %w", err)
		}
		if row == nil {
			return ErrNotFound
		}
		if err := cs.termRepo.DeleteByID(ctx, tx, id); err != nil {
			return fmt.Errorf("delete term: %w", err)
		}
		return cs.auditService.Record(ctx, tx, actorID, "delete_term", row.Term, nil)
	})
}

func (cs *contentService) CreateInterview(ctx context.Context, actorID int64, question, idealAnswer, role, company string) error {
	question = strings.TrimSpace(question)
	idealAnswer = strings.TrimSpace(idealAnswer)
	role = strings.TrimSpace(role)
	company = strings.TrimSpace(company)
	if question == "" || idealAnswer == "" || role == "" || company == "" {
		return validationError("question, ideal_answer, role, company required")
	}
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := cs.interviewRepo.Create(ctx, tx, &types.UploadedInterview{
			Question:    question,
			IdealAnswer: idealAnswer,
			Role:        role,
			Company:     company,
			AddedBy:     actorID,
		}); err != nil {
			return fmt.Errorf("create interview: %w", err)
		}
		return cs.auditService.Record(ctx, tx, actorID, "upload_interview", truncate(question, 50), nil)
	})
}

func (cs *contentService) BulkCreateInterviews(ctx context.Context, actorID int64, role, company string, entries []QAInput) (int, error) {
	role = strings.TrimSpace(role)
	company = strings.TrimSpace(company)
	if len(entries) == 0 || role == "" || company == "" {
		return 0, validationError("entries, role, company required")
	}

	// Pre-flight duplicate check against the full stored set. Two concurrent
	// imports can both pass this check against the same snapshot; that
	// window is accepted.
	stored, err := cs.interviewRepo.ListQuestions(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("list questions: %w", err)
	}
	existing := make(map[string]struct{}, len(stored))
	for _, q := range stored {
		existing[normalizeQuestion(q)] = struct{}{}
	}
	var duplicates []string
	for _, entry := range entries {
		if entry.Question == "" {
			continue
		}
		if _, ok := existing[normalizeQuestion(entry.Question)]; ok {
			duplicates = append(duplicates, entry.Question)
		}
	}
	if len(duplicates) > 0 {
		return 0, &DuplicateQuestionsError{Questions: duplicates}
	}

	err = cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			question := strings.TrimSpace(entry.Question)
			answer := strings.TrimSpace(entry.IdealAnswer)
			if question == "" || answer == "" {
				continue
			}
			if _, err := cs.interviewRepo.Create(ctx, tx, &types.UploadedInterview{
				Question:    question,
				IdealAnswer: answer,
				Role:        role,
				Company:     company,
				AddedBy:     actorID,
			}); err != nil {
				return fmt.Errorf("create interview: %w", err)
			}
		}
		return cs.auditService.Record(ctx, tx, actorID, "upload_interview_bulk", fmt.Sprint(len(entries)), nil)
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (cs *contentService) ListInterviewAdmin(ctx context.Context) ([]*types.UploadedInterview, error) {
	return cs.interviewRepo.ListNewestFirst(ctx, nil)
}

func (cs *contentService) ListInterviewStudy(ctx context.Context) ([]StudyInterview, error) {
	rows, err := cs.interviewRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]StudyInterview, 0, len(rows))
	for _, row := range rows {
		out = append(out, StudyInterview{
			Question:    row.Question,
			IdealAnswer: row.IdealAnswer,
			Role:        row.Role,
			Company:     row.Company,
		})
	}
	return out, nil
}

func (cs *contentService) DeleteInterview(ctx context.Context, actorID, id int64) error {
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := cs.interviewRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("lookup interview: %w", err)
		}
		if row == nil {
			return ErrNotFound
		}
		if err := cs.interviewRepo.DeleteByID(ctx, tx, id); err != nil {
			return fmt.Errorf("delete interview: %w", err)
		}
		return cs.auditService.Record(ctx, tx, actorID, "delete_interview", truncate(row.Question, 50), nil)
	})
}

func normalizeQuestion(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
