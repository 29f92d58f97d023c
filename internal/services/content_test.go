package services

import (
	"context"
	"errors"
	"testing"

	"github.com/harshastride/interview-coach/internal/curriculum"
)

func validTerm() TermInput {
	return TermInput{Term: "Lakehouse", Def: "Warehouse and lake combined", Level: 3, Category: curriculum.Categories[0]}
}

func TestCreateTerm_RejectsBadLevel(t *testing.T) {
	e := newEnv(t)
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	input := validTerm()
	input.Level = 6
	err := e.contentService.CreateTerm(context.Background(), admin.ID, input)
	if !errorsIsValidation(err) {
		t.Fatalf("expected validation error for level 6, got %v", err)
	}
}

func TestCreateTerm_RejectsUnknownCategory(t *testing.T) {
	e := newEnv(t)
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	input := validTerm()
	input.Category = "Underwater Basket Weaving"
	err := e.contentService.CreateTerm(context.Background(), admin.ID, input)
	if !errorsIsValidation(err) {
		t.Fatalf("expected validation error for unknown category, got %v", err)
	}
}

func TestCreateTerm_WritesRowAndAudit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	if err := e.contentService.CreateTerm(ctx, admin.ID, validTerm()); err != nil {
		t.Fatalf("create term: %v", err)
	}
	rows, err := e.termRepo.ListAll(ctx, nil)
	if err != nil {
		t.Fatalf("list terms: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one term, got %d", len(rows))
	}
	if got := e.lastAuditAction(t); got != "upload_term" {
		t.Fatalf("expected upload_term audit entry, got %q", got)
	}
}

func TestBulkCreateTerms_SkipsInvalidRows(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	bad := validTerm()
	bad.Term = ""
	imported, err := e.contentService.BulkCreateTerms(ctx, admin.ID, []TermInput{validTerm(), bad})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	if imported != 1 {
		t.Fatalf("expected imported=1, got %d", imported)
	}
	rows, _ := e.termRepo.ListAll(ctx, nil)
	if len(rows) != 1 {
		t.Fatalf("expected exactly one stored term, got %d", len(rows))
	}
	if got := e.lastAuditAction(t); got != "upload_terms_bulk" {
		t.Fatalf("expected upload_terms_bulk audit entry, got %q", got)
	}
}

func TestBulkCreateInterviews_RejectsDuplicateQuestions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	if err := e.contentService.CreateInterview(ctx, admin.ID, "What is a shuffle?", "Data movement between stages.", "Data Engineer", "Acme"); err != nil {
		t.Fatalf("seed interview: %v", err)
	}

	entries := []QAInput{
		{Question: "  what is a SHUFFLE? ", IdealAnswer: "dup"},
		{Question: "What is a broadcast join?", IdealAnswer: "fresh"},
	}
	_, err := e.contentService.BulkCreateInterviews(ctx, admin.ID, "Data Engineer", "Acme", entries)

	var dup *DuplicateQuestionsError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateQuestionsError, got %v", err)
	}
	if len(dup.Questions) != 1 {
		t.Fatalf("expected one duplicate named, got %v", dup.Questions)
	}
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected duplicate error to match ErrConflict")
	}

	// All-or-nothing: the fresh question must not have been written either.
	count, _ := e.interviewRepo.Count(ctx, nil)
	if count != 1 {
		t.Fatalf("expected store unchanged at 1 row, got %d", count)
	}
}

func TestBulkCreateInterviews_CountsSubmittedEntries(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	entries := []QAInput{
		{Question: "Q1?", IdealAnswer: "A1"},
		{Question: "", IdealAnswer: "skipped"},
		{Question: "Q2?", IdealAnswer: "A2"},
	}
	imported, err := e.contentService.BulkCreateInterviews(ctx, admin.ID, "Data Engineer", "Acme", entries)
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	// The reported count is the submitted batch size, not the stored rows.
	if imported != 3 {
		t.Fatalf("expected imported=3, got %d", imported)
	}
	count, _ := e.interviewRepo.Count(ctx, nil)
	if count != 2 {
		t.Fatalf("expected 2 stored rows, got %d", count)
	}
}

func TestBulkCreateInterviews_RequiresRoleAndCompany(t *testing.T) {
	e := newEnv(t)
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	_, err := e.contentService.BulkCreateInterviews(context.Background(), admin.ID, "", "Acme", []QAInput{{Question: "Q?", IdealAnswer: "A"}})
	if !errorsIsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteTerm_NotFound(t *testing.T) {
	e := newEnv(t)
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	err := e.contentService.DeleteTerm(context.Background(), admin.ID, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteInterview_RemovesRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")
	if err := e.contentService.CreateInterview(ctx, admin.ID, "Q?", "A.", "Data Engineer", "Acme"); err != nil {
		t.Fatalf("create interview: %v", err)
	}
	rows, _ := e.interviewRepo.ListAll(ctx, nil)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}

	if err := e.contentService.DeleteInterview(ctx, admin.ID, rows[0].ID); err != nil {
		t.Fatalf("delete interview: %v", err)
	}
	count, _ := e.interviewRepo.Count(ctx, nil)
	if count != 0 {
		t.Fatalf("expected empty store, got %d rows", count)
	}
	if got := e.lastAuditAction(t); got != "delete_interview" {
		t.Fatalf("expected delete_interview audit entry, got %q", got)
	}
}

func TestListTermsStudy_ProjectsWithoutIDs(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")
	if err := e.contentService.CreateTerm(ctx, admin.ID, validTerm()); err != nil {
		t.Fatalf("create term: %v", err)
	}

	rows, err := e.contentService.ListTermsStudy(ctx)
	if err != nil {
		t.Fatalf("list study terms: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	want := validTerm()
	if rows[0].Term != want.Term || rows[0].Level != want.Level || rows[0].Category != want.Category {
		t.Fatalf("unexpected projection: %+v", rows[0])
	}
}
