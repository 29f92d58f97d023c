package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/curriculum"
	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.User, error)
	GetByGoogleID(ctx context.Context, tx *gorm.DB, googleID string) (*types.User, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
	RefreshLogin(ctx context.Context, tx *gorm.DB, id int64, name, avatarURL string, isAllowed int) error
	SetRole(ctx context.Context, tx *gorm.DB, id int64, role curriculum.Role) error
	SetAllowed(ctx context.Context, tx *gorm.DB, id int64, allowed int) error
	SetAllowedByEmail(ctx context.Context, tx *gorm.DB, email string, allowed int) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if user == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByGoogleID(ctx context.Context, tx *gorm.DB, googleID string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	err := transaction.WithContext(ctx).
		Where("google_id = ?", googleID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ur *userRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if err := transaction.WithContext(ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) RefreshLogin(ctx context.Context, tx *gorm.DB, id int64, name, avatarURL string, isAllowed int) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       name,
			"avatar_url": avatarURL,
			"is_allowed": isAllowed,
			"last_login": time.Now(),
		}).Error
}

func (ur *userRepo) SetRole(ctx context.Context, tx *gorm.DB, id int64, role curriculum.Role) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (ur *userRepo) SetAllowed(ctx context.Context, tx *gorm.DB, id int64, allowed int) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", id).
		Update("is_allowed", allowed).Error
}

func (ur *userRepo) SetAllowedByEmail(ctx context.Context, tx *gorm.DB, email string, allowed int) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Update("is_allowed", allowed).Error
}
