package services

import (
	"context"
	"errors"
	"testing"

	"github.com/harshastride/interview-coach/internal/curriculum"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpdateUser_RejectsSelfModification(t *testing.T) {
	e := newEnv(t)
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	err := e.userService.UpdateUser(context.Background(), admin.ID, admin.ID, UserUpdate{Role: strPtr("viewer")})
	if !errors.Is(err, ErrSelfModify) {
		t.Fatalf("expected ErrSelfModify, got %v", err)
	}
}

func TestRemoveUser_RejectsSelfModification(t *testing.T) {
	e := newEnv(t)
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	err := e.userService.RemoveUser(context.Background(), admin.ID, admin.ID)
	if !errors.Is(err, ErrSelfModify) {
		t.Fatalf("expected ErrSelfModify, got %v", err)
	}
}

func TestUpdateUser_RejectsUnknownRole(t *testing.T) {
	e := newEnv(t)
	admin := e.mustLogin(t, "google-1", "admin@example.com")
	target := e.mustLogin(t, "google-2", "target@example.com")

	err := e.userService.UpdateUser(context.Background(), admin.ID, target.ID, UserUpdate{Role: strPtr("superuser")})
	if !errorsIsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateUser_ChangesRoleAndAudits(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")
	target := e.mustLogin(t, "google-2", "target@example.com")

	if err := e.userService.UpdateUser(ctx, admin.ID, target.ID, UserUpdate{Role: strPtr("manager")}); err != nil {
		t.Fatalf("update user: %v", err)
	}

	reloaded, err := e.userRepo.GetByID(ctx, nil, target.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.Role != curriculum.RoleManager {
		t.Fatalf("expected role manager, got %q", reloaded.Role)
	}
	if got := e.lastAuditAction(t); got != "change_role" {
		t.Fatalf("expected change_role audit entry, got %q", got)
	}
}

func TestUpdateUser_GrantAndRevokeAccess(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")
	target := e.mustLogin(t, "google-2", "target@example.com")

	if err := e.userService.UpdateUser(ctx, admin.ID, target.ID, UserUpdate{IsAllowed: boolPtr(true)}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	reloaded, _ := e.userRepo.GetByID(ctx, nil, target.ID)
	if !reloaded.Allowed() {
		t.Fatalf("expected access granted")
	}
	if got := e.lastAuditAction(t); got != "grant_access" {
		t.Fatalf("expected grant_access audit entry, got %q", got)
	}

	if err := e.userService.UpdateUser(ctx, admin.ID, target.ID, UserUpdate{IsAllowed: boolPtr(false)}); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	reloaded, _ = e.userRepo.GetByID(ctx, nil, target.ID)
	if reloaded.Allowed() {
		t.Fatalf("expected access revoked")
	}
	if got := e.lastAuditAction(t); got != "revoke_access" {
		t.Fatalf("expected revoke_access audit entry, got %q", got)
	}
}

func TestRemoveUser_ClearsAccessButKeepsRow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")
	target := e.mustLogin(t, "google-2", "target@example.com")
	if err := e.userService.UpdateUser(ctx, admin.ID, target.ID, UserUpdate{IsAllowed: boolPtr(true)}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	if err := e.userService.RemoveUser(ctx, admin.ID, target.ID); err != nil {
		t.Fatalf("remove user: %v", err)
	}
	reloaded, err := e.userRepo.GetByID(ctx, nil, target.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded == nil {
		t.Fatalf("expected user row to survive removal")
	}
	if reloaded.Allowed() {
		t.Fatalf("expected access cleared")
	}
}

func TestAddAllowlist_EnablesExistingUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")
	target := e.mustLogin(t, "google-2", "target@example.com")
	if target.Allowed() {
		t.Fatalf("precondition: target should start without access")
	}

	if err := e.userService.AddAllowlist(ctx, admin.ID, "Target@Example.com"); err != nil {
		t.Fatalf("add allowlist: %v", err)
	}

	onList, err := e.allowlistRepo.Exists(ctx, nil, "target@example.com")
	if err != nil || !onList {
		t.Fatalf("expected normalized email on list, ok=%v err=%v", onList, err)
	}
	reloaded, _ := e.userRepo.GetByID(ctx, nil, target.ID)
	if !reloaded.Allowed() {
		t.Fatalf("expected existing user enabled by allowlist add")
	}
	if got := e.lastAuditAction(t); got != "allowlist_add" {
		t.Fatalf("expected allowlist_add audit entry, got %q", got)
	}
}

func TestAddAllowlist_IsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")

	if err := e.userService.AddAllowlist(ctx, admin.ID, "guest@example.com"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := e.userService.AddAllowlist(ctx, admin.ID, "guest@example.com"); err != nil {
		t.Fatalf("second add should upsert, got %v", err)
	}
	rows, err := e.allowlistRepo.ListAll(ctx, nil)
	if err != nil {
		t.Fatalf("list allowlist: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one allowlist row, got %d", len(rows))
	}
}

func TestAddAllowlist_RequiresEmail(t *testing.T) {
	e := newEnv(t)
	admin := e.mustLogin(t, "google-1", "admin@example.com")
	if err := e.userService.AddAllowlist(context.Background(), admin.ID, "   "); !errorsIsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveAllowlist_DisablesUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := e.mustLogin(t, "google-1", "admin@example.com")
	if err := e.userService.AddAllowlist(ctx, admin.ID, "guest@example.com"); err != nil {
		t.Fatalf("add: %v", err)
	}
	guest := e.mustLogin(t, "google-2", "guest@example.com")
	if !guest.Allowed() {
		t.Fatalf("precondition: guest should be allowed")
	}

	if err := e.userService.RemoveAllowlist(ctx, admin.ID, "guest@example.com"); err != nil {
		t.Fatalf("remove allowlist: %v", err)
	}
	onList, _ := e.allowlistRepo.Exists(ctx, nil, "guest@example.com")
	if onList {
		t.Fatalf("expected email removed from list")
	}
	reloaded, _ := e.userRepo.GetByID(ctx, nil, guest.ID)
	if reloaded.Allowed() {
		t.Fatalf("expected user disabled by allowlist removal")
	}
}
