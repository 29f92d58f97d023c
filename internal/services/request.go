package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/repos"
	"github.com/harshastride/interview-coach/internal/types"
)

type AccessRequestService interface {
	// Create files a pending request for the given identity. Name is required.
	Create(ctx context.Context, email, name, reason string) error
	ListPending(ctx context.Context) ([]*types.AccessRequest, error)
	// Approve allowlists the requester, re-enables their user row and marks
	// the request approved; non-pending requests read as not found.
	Approve(ctx context.Context, actorID, requestID int64) error
	Reject(ctx context.Context, actorID, requestID int64) error
}

type accessRequestService struct {
	db            *gorm.DB
	log           *logger.Logger
	requestRepo   repos.AccessRequestRepo
	allowlistRepo repos.AllowlistRepo
	userRepo      repos.UserRepo
	auditService  AuditService
}

func NewAccessRequestService(
	db *gorm.DB,
	log *logger.Logger,
	requestRepo repos.AccessRequestRepo,
	allowlistRepo repos.AllowlistRepo,
	userRepo repos.UserRepo,
	auditService AuditService,
) AccessRequestService {
	serviceLog := log.With("service", "AccessRequestService")
	return &accessRequestService{
		db:            db,
		log:           serviceLog,
		requestRepo:   requestRepo,
		allowlistRepo: allowlistRepo,
		userRepo:      userRepo,
		auditService:  auditService,
	}
}

func (rs *accessRequestService) Create(ctx context.Context, email, name, reason string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationError("name required")
	}
	_, err := rs.requestRepo.Create(ctx, nil, &types.AccessRequest{
		Email:  email,
		Name:   name,
		Reason: strings.TrimSpace(reason),
		Status: types.AccessRequestPending,
	})
	return err
}

func (rs *accessRequestService) ListPending(ctx context.Context) ([]*types.AccessRequest, error) {
	return rs.requestRepo.ListPending(ctx, nil)
}

func (rs *accessRequestService) Approve(ctx context.Context, actorID, requestID int64) error {
	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := rs.requestRepo.GetPendingByID(ctx, tx, requestID)
		if err != nil {
			return fmt.Errorf("lookup request: %w", err)
		}
		if row == nil {
			return ErrNotFound
		}
		if err := rs.allowlistRepo.Upsert(ctx, tx, row.Email, actorID); err != nil {
			return fmt.Errorf("allowlist upsert: %w", err)
		}
		if err := rs.userRepo.SetAllowedByEmail(ctx, tx, row.Email, 1); err != nil {
			return fmt.Errorf("enable user: %w", err)
		}
		if err := rs.requestRepo.SetStatus(ctx, tx, requestID, types.AccessRequestApproved); err != nil {
			return fmt.Errorf("mark approved: %w", err)
		}
		return rs.auditService.Record(ctx, tx, actorID, "approve_access_request", row.Email, nil)
	})
}

func (rs *accessRequestService) Reject(ctx context.Context, actorID, requestID int64) error {
	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := rs.requestRepo.GetPendingByID(ctx, tx, requestID)
		if err != nil {
			return fmt.Errorf("lookup request: %w", err)
		}
		if row == nil {
			return ErrNotFound
		}
		if err := rs.requestRepo.SetStatus(ctx, tx, requestID, types.AccessRequestRejected); err != nil {
			return fmt.Errorf("mark rejected: %w", err)
		}
		return rs.auditService.Record(ctx, tx, actorID, "reject_access_request", row.Email, nil)
	})
}
