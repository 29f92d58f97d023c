package services

import (
	"context"
	"errors"
	"testing"

	"github.com/harshastride/interview-coach/internal/types"
)

func TestAccessRequestCreate_RequiresName(t *testing.T) {
	e := newEnv(t)
	err := e.requestService.Create(context.Background(), "someone@example.com", "   ", "please")
	if !errorsIsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAccessRequestApprove_GrantsAccess(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")
	guest := e.mustLogin(t, "google-2", "guest@example.com")
	if guest.Allowed() {
		t.Fatalf("precondition: guest should start without access")
	}

	if err := e.requestService.Create(ctx, guest.Email, "Guest", "need it"); err != nil {
		t.Fatalf("create request: %v", err)
	}
	pending, err := e.requestService.ListPending(ctx)
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected one pending request, got %d err=%v", len(pending), err)
	}

	if err := e.requestService.Approve(ctx, admin.ID, pending[0].ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	onList, _ := e.allowlistRepo.Exists(ctx, nil, guest.Email)
	if !onList {
		t.Fatalf("expected email allowlisted on approval")
	}
	reloaded, _ := e.userRepo.GetByID(ctx, nil, guest.ID)
	if !reloaded.Allowed() {
		t.Fatalf("expected user enabled on approval")
	}
	if got := e.lastAuditAction(t); got != "approve_access_request" {
		t.Fatalf("expected approve_access_request audit entry, got %q", got)
	}
}

func TestAccessRequestApprove_IsTerminal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	if err := e.requestService.Create(ctx, "guest@example.com", "Guest", ""); err != nil {
		t.Fatalf("create request: %v", err)
	}
	pending, _ := e.requestService.ListPending(ctx)
	id := pending[0].ID

	if err := e.requestService.Approve(ctx, admin.ID, id); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	err := e.requestService.Approve(ctx, admin.ID, id)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second approve, got %v", err)
	}

	// The first approval's side effects survive the failed replay.
	onList, _ := e.allowlistRepo.Exists(ctx, nil, "guest@example.com")
	if !onList {
		t.Fatalf("expected allowlist entry to survive replayed approval")
	}
}

func TestAccessRequestReject_IsTerminal(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	if err := e.requestService.Create(ctx, "guest@example.com", "Guest", ""); err != nil {
		t.Fatalf("create request: %v", err)
	}
	pending, _ := e.requestService.ListPending(ctx)
	id := pending[0].ID

	if err := e.requestService.Reject(ctx, admin.ID, id); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := e.requestService.Reject(ctx, admin.ID, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second reject, got %v", err)
	}

	// Rejection never touches the allowlist.
	onList, _ := e.allowlistRepo.Exists(ctx, nil, "guest@example.com")
	if onList {
		t.Fatalf("expected no allowlist entry after rejection")
	}
	row, _ := e.requestRepo.GetPendingByID(ctx, nil, id)
	if row != nil {
		t.Fatalf("expected request no longer pending")
	}
}

func TestListPending_ExcludesSettledRequests(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if err := e.requestService.Create(ctx, email, "Name", ""); err != nil {
			t.Fatalf("create request: %v", err)
		}
	}
	pending, _ := e.requestService.ListPending(ctx)
	if len(pending) != 2 {
		t.Fatalf("expected two pending, got %d", len(pending))
	}

	if err := e.requestService.Reject(ctx, admin.ID, pending[0].ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	pending, _ = e.requestService.ListPending(ctx)
	if len(pending) != 1 {
		t.Fatalf("expected one pending after rejection, got %d", len(pending))
	}
	if pending[0].Status != types.AccessRequestPending {
		t.Fatalf("expected pending status, got %q", pending[0].Status)
	}
}
