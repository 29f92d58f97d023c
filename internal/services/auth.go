package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/curriculum"
	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/repos"
	"github.com/harshastride/interview-coach/internal/session"
	"github.com/harshastride/interview-coach/internal/types"
)

// GoogleProfile is the identity-provider payload the login resolver consumes.
type GoogleProfile struct {
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}

type AuthService interface {
	// ResolveLogin maps an identity-provider profile to a User row,
	// creating or refreshing it per the allowlist rules.
	ResolveLogin(ctx context.Context, profile GoogleProfile) (*types.User, error)
	// IssueSession mints a session token for the user.
	IssueSession(ctx context.Context, userID int64) (string, error)
	// ResolveSession maps a session token back to the current User row.
	ResolveSession(ctx context.Context, token string) (*types.User, bool, error)
	Logout(ctx context.Context, token string) error
	SessionTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	allowlistRepo repos.AllowlistRepo
	sessions      session.Store
	sessionTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	allowlistRepo repos.AllowlistRepo,
	sessions session.Store,
	sessionTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	if sessionTTL <= 0 {
		sessionTTL = session.DefaultTTL
	}
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		allowlistRepo: allowlistRepo,
		sessions:      sessions,
		sessionTTL:    sessionTTL,
	}
}

// ResolveLogin implements the login resolution algorithm:
//   - unknown subject, empty user table: bootstrap admin, allowed
//   - unknown subject otherwise: viewer, allowed iff email is allowlisted
//   - known subject: refresh name/avatar/last-login; allowed stays sticky
//     (current allow OR allowlist membership), never silently revoked.
func (as *authService) ResolveLogin(ctx context.Context, profile GoogleProfile) (*types.User, error) {
	if strings.TrimSpace(profile.Subject) == "" {
		return nil, validationError("identity subject required")
	}
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		name = "User"
	}

	var resolved *types.User
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := as.userRepo.GetByGoogleID(ctx, tx, profile.Subject)
		if err != nil {
			return fmt.Errorf("lookup user: %w", err)
		}

		onList, err := as.allowlistRepo.Exists(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("check allowlist: %w", err)
		}

		if user == nil {
			count, err := as.userRepo.Count(ctx, tx)
			if err != nil {
				return fmt.Errorf("count users: %w", err)
			}
			role := curriculum.RoleViewer
			allowed := 0
			if count == 0 {
				// The first user ever becomes the administrator so the
				// system is never left without one.
				role = curriculum.RoleAdmin
				allowed = 1
			} else if onList {
				allowed = 1
			}
			created, err := as.userRepo.Create(ctx, tx, &types.User{
				GoogleID:  profile.Subject,
				Email:     email,
				Name:      name,
				AvatarURL: profile.AvatarURL,
				Role:      role,
				IsAllowed: allowed,
				LastLogin: time.Now(),
			})
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			resolved = created
			return nil
		}

		allowed := user.IsAllowed
		if allowed == 0 && onList {
			allowed = 1
		}
		if err := as.userRepo.RefreshLogin(ctx, tx, user.ID, name, profile.AvatarURL, allowed); err != nil {
			return fmt.Errorf("refresh login: %w", err)
		}
		refreshed, err := as.userRepo.GetByID(ctx, tx, user.ID)
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		resolved = refreshed
		return nil
	})
	if err != nil {
		return nil, err
	}

	as.log.Info("Login resolved", "user_id", resolved.ID, "role", string(resolved.Role), "allowed", resolved.IsAllowed)
	return resolved, nil
}

func (as *authService) IssueSession(ctx context.Context, userID int64) (string, error) {
	return as.sessions.New(ctx, userID)
}

func (as *authService) ResolveSession(ctx context.Context, token string) (*types.User, bool, error) {
	if token == "" {
		return nil, false, nil
	}
	userID, ok, err := as.sessions.Get(ctx, token)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, nil
	}
	return user, true, nil
}

func (as *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return as.sessions.Delete(ctx, token)
}

func (as *authService) SessionTTL() time.Duration {
	return as.sessionTTL
}
