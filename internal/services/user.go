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

// UserUpdate carries the optional fields of an admin PATCH. Nil means the
// field is untouched.
type UserUpdate struct {
	Role      *string
	IsAllowed *bool
}

type UserService interface {
	ListUsers(ctx context.Context) ([]*types.User, error)
	UpdateUser(ctx context.Context, actorID, targetID int64, update UserUpdate) error
	// RemoveUser clears is_allowed; the row itself is kept.
	RemoveUser(ctx context.Context, actorID, targetID int64) error

	ListAllowlist(ctx context.Context) ([]*types.AllowlistEntry, error)
	AddAllowlist(ctx context.Context, actorID int64, email string) error
	RemoveAllowlist(ctx context.Context, actorID int64, email string) error
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	allowlistRepo repos.AllowlistRepo
	auditService  AuditService
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	allowlistRepo repos.AllowlistRepo,
	auditService AuditService,
) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		allowlistRepo: allowlistRepo,
		auditService:  auditService,
	}
}

func (us *userService) ListUsers(ctx context.Context) ([]*types.User, error) {
	return us.userRepo.ListAll(ctx, nil)
}

func (us *userService) UpdateUser(ctx context.Context, actorID, targetID int64, update UserUpdate) error {
	if actorID == targetID {
		return ErrSelfModify
	}
	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if update.Role != nil {
			role := curriculum.Role(*update.Role)
			if !role.Valid() {
				return validationError("invalid role")
			}
			if err := us.userRepo.SetRole(ctx, tx, targetID, role); err != nil {
				return fmt.Errorf("set role: %w", err)
			}
			if err := us.auditService.Record(ctx, tx, actorID, "change_role", fmt.Sprint(targetID), map[string]interface{}{"role": string(role)}); err != nil {
				return err
			}
		}
		if update.IsAllowed != nil {
			allowed := 0
			action := "revoke_access"
			if *update.IsAllowed {
				allowed = 1
				action = "grant_access"
			}
			if err := us.userRepo.SetAllowed(ctx, tx, targetID, allowed); err != nil {
				return fmt.Errorf("set allowed: %w", err)
			}
			if err := us.auditService.Record(ctx, tx, actorID, action, fmt.Sprint(targetID), nil); err != nil {
				return err
			}
		}
		return nil
	})
}

func (us *userService) RemoveUser(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return ErrSelfModify
	}
	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := us.userRepo.SetAllowed(ctx, tx, targetID, 0); err != nil {
			return fmt.Errorf("revoke access: %w", err)
		}
		return us.auditService.Record(ctx, tx, actorID, "revoke_access", fmt.Sprint(targetID), nil)
	})
}

func (us *userService) ListAllowlist(ctx context.Context) ([]*types.AllowlistEntry, error) {
	return us.allowlistRepo.ListAll(ctx, nil)
}

// AddAllowlist upserts the email and re-enables any existing user carrying it.
func (us *userService) AddAllowlist(ctx context.Context, actorID int64, email string) error {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return validationError("email required")
	}
	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := us.allowlistRepo.Upsert(ctx, tx, normalized, actorID); err != nil {
			return fmt.Errorf("allowlist upsert: %w", err)
		}
		if err := us.userRepo.SetAllowedByEmail(ctx, tx, normalized, 1); err != nil {
			return fmt.Errorf("enable user: %w", err)
		}
		return us.auditService.Record(ctx, tx, actorID, "allowlist_add", normalized, nil)
	})
}

func (us *userService) RemoveAllowlist(ctx context.Context, actorID int64, email string) error {
	if strings.TrimSpace(email) == "" {
		return validationError("email required")
	}
	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := us.allowlistRepo.Delete(ctx, tx, email); err != nil {
			return fmt.Errorf("allowlist delete: %w", err)
		}
		if err := us.userRepo.SetAllowedByEmail(ctx, tx, email, 0); err != nil {
			return fmt.Errorf("disable user: %w", err)
		}
		return us.auditService.Record(ctx, tx, actorID, "allowlist_remove", email, nil)
	})
}
