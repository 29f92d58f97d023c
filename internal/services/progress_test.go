package services

import (
	"context"
	"math"
	"strings"
	"testing"
)

func TestProgressSave_ClampsCompletedToTotal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.mustLogin(t, "google-1", "admin@example.com")

	err := e.progressService.Save(ctx, user.ID, ProgressInput{TotalTerms: 5, CompletedTerms: 9999})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	row, err := e.progressRepo.GetByUserID(ctx, nil, user.ID)
	if err != nil || row == nil {
		t.Fatalf("get progress: row=%v err=%v", row, err)
	}
	if row.TotalTerms != 5 || row.CompletedTerms != 5 {
		t.Fatalf("expected completed clamped to 5, got total=%d completed=%d", row.TotalTerms, row.CompletedTerms)
	}
}

func TestProgressSave_ClampsInterviewAnswered(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.mustLogin(t, "google-1", "admin@example.com")

	if err := e.progressService.Save(ctx, user.ID, ProgressInput{InterviewTotal: 3, InterviewAnswered: 10}); err != nil {
		t.Fatalf("save: %v", err)
	}
	row, _ := e.progressRepo.GetByUserID(ctx, nil, user.ID)
	if row.InterviewAnswered != 3 {
		t.Fatalf("expected answered clamped to 3, got %d", row.InterviewAnswered)
	}
}

func TestProgressSave_CoercesBogusNumbers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.mustLogin(t, "google-1", "admin@example.com")

	err := e.progressService.Save(ctx, user.ID, ProgressInput{
		TotalTerms:    math.NaN(),
		QuizCorrect:   -4,
		QuizIncorrect: 2.9,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	row, _ := e.progressRepo.GetByUserID(ctx, nil, user.ID)
	if row.TotalTerms != 0 || row.QuizCorrect != 0 || row.QuizIncorrect != 2 {
		t.Fatalf("unexpected coercion: %+v", row)
	}
}

func TestProgressSave_ModuleDefaultsAndTruncates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.mustLogin(t, "google-1", "admin@example.com")

	if err := e.progressService.Save(ctx, user.ID, ProgressInput{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	row, _ := e.progressRepo.GetByUserID(ctx, nil, user.ID)
	if row.Module != "home" {
		t.Fatalf("expected default module home, got %q", row.Module)
	}

	long := strings.Repeat("x", 64)
	if err := e.progressService.Save(ctx, user.ID, ProgressInput{Module: long}); err != nil {
		t.Fatalf("save: %v", err)
	}
	row, _ = e.progressRepo.GetByUserID(ctx, nil, user.ID)
	if len(row.Module) != 32 {
		t.Fatalf("expected module truncated to 32, got %d", len(row.Module))
	}
}

func TestProgressSave_UpsertsSingleRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	user := e.mustLogin(t, "google-1", "admin@example.com")

	if err := e.progressService.Save(ctx, user.ID, ProgressInput{TotalTerms: 10, CompletedTerms: 2}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := e.progressService.Save(ctx, user.ID, ProgressInput{TotalTerms: 10, CompletedTerms: 7}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	row, _ := e.progressRepo.GetByUserID(ctx, nil, user.ID)
	if row.CompletedTerms != 7 {
		t.Fatalf("expected latest snapshot to win, got %d", row.CompletedTerms)
	}
}

func TestDashboard_ComputesCompletionPercentages(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	active := e.mustLogin(t, "google-1", "active@example.com")
	e.mustLogin(t, "google-2", "idle@example.com")

	if err := e.progressService.Save(ctx, active.ID, ProgressInput{
		TotalTerms: 4, CompletedTerms: 3,
		InterviewTotal: 3, InterviewAnswered: 1,
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	rows, err := e.progressService.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected both users on the dashboard, got %d", len(rows))
	}

	var gotActive, gotIdle bool
	for _, row := range rows {
		switch row.Email {
		case "active@example.com":
			gotActive = true
			if row.FlashcardCompletionPct != 75.0 {
				t.Fatalf("expected 75.0 flashcard pct, got %v", row.FlashcardCompletionPct)
			}
			if row.InterviewCompletionPct != 33.3 {
				t.Fatalf("expected 33.3 interview pct, got %v", row.InterviewCompletionPct)
			}
		case "idle@example.com":
			gotIdle = true
			if row.Module != nil {
				t.Fatalf("expected nil snapshot fields for idle user")
			}
			if row.FlashcardCompletionPct != 0 || row.InterviewCompletionPct != 0 {
				t.Fatalf("expected zero pct for idle user")
			}
		}
	}
	if !gotActive || !gotIdle {
		t.Fatalf("missing dashboard rows: active=%v idle=%v", gotActive, gotIdle)
	}
}
