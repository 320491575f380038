package service

import (
	"context"
	"log/slog"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	Status   ports.AccountStatusRepository
	Feed     ports.StatusFeed
	Sessions ports.SessionStore
	Logger   *slog.Logger
}

// AccountService is the console-side write path for admin account status.
// Pausing persists the flag, revokes the admin's sessions, and publishes on
// the status feed so live sessions observe the pause without polling.
type AccountService struct {
	status   ports.AccountStatusRepository
	feed     ports.StatusFeed
	sessions ports.SessionStore
	logger   *slog.Logger
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountService{
		status:   opts.Status,
		feed:     opts.Feed,
		sessions: opts.Sessions,
		logger:   logger,
	}
}

// Pause marks the admin account paused. The feed publish is best effort: the
// persisted flag is authoritative and the next role resolution enforces it
// even if the live notification is lost.
func (s *AccountService) Pause(ctx context.Context, userID string) error {
	return s.setStatus(ctx, userID, domainauth.AccountPaused)
}

// Resume reactivates the admin account.
func (s *AccountService) Resume(ctx context.Context, userID string) error {
	return s.setStatus(ctx, userID, domainauth.AccountActive)
}

// Status returns the current account status for the admin.
func (s *AccountService) Status(ctx context.Context, userID string) (domainauth.AccountStatus, error) {
	if userID == "" {
		return "", apperrors.Validation("user id is required")
	}
	return s.status.StatusForAdmin(ctx, userID)
}

func (s *AccountService) setStatus(ctx context.Context, userID string, status domainauth.AccountStatus) error {
	if userID == "" {
		return apperrors.Validation("user id is required")
	}
	if err := s.status.SetStatus(ctx, userID, status); err != nil {
		return err
	}

	if status == domainauth.AccountPaused && s.sessions != nil {
		if err := s.sessions.DeleteAllForUser(ctx, userID); err != nil {
			s.logger.ErrorContext(ctx, "revoking paused admin sessions failed",
				"user_id", userID, "error", err)
		}
	}

	if s.feed != nil {
		if err := s.feed.Publish(ctx, userID, status); err != nil {
			s.logger.ErrorContext(ctx, "account status publish failed",
				"user_id", userID, "status", status, "error", err)
		}
	}

	s.logger.InfoContext(ctx, "admin account status changed", "user_id", userID, "status", status)
	return nil
}
