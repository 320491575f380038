package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/bkndhn/bazaar-api/internal/errors"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Exchanger ports.CredentialExchanger
	Sessions  ports.SessionStore
	Roles     ports.RoleRepository
	Events    *EventBus
	Logger    *slog.Logger
}

// AuthService orchestrates credential exchange, role lookup, and session
// persistence, and publishes auth events on the bus.
type AuthService struct {
	exchanger ports.CredentialExchanger
	sessions  ports.SessionStore
	roles     ports.RoleRepository
	events    *EventBus
	logger    *slog.Logger
}

var _ ports.Authenticator = (*AuthService)(nil)

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		exchanger: opts.Exchanger,
		sessions:  opts.Sessions,
		roles:     opts.Roles,
		events:    opts.Events,
		logger:    logger,
	}
}

// SignUp creates a new credential. It does not issue a session; callers sign
// in afterwards, which keeps the sign-in path the single place sessions are
// minted.
func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (domainauth.Identity, error) {
	identity, err := s.exchanger.SignUp(ctx, in)
	if err != nil {
		return domainauth.Identity{}, err
	}
	s.logger.InfoContext(ctx, "user signed up", "user_id", identity.UserID)
	return identity, nil
}

// SignIn verifies credentials, loads the authoritative role set, persists a
// session, and publishes SIGNED_IN. A role lookup failure degrades to an
// empty role set rather than failing the sign-in.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (domainauth.Session, error) {
	identity, err := s.exchanger.Verify(ctx, email, password)
	if err != nil {
		return domainauth.Session{}, err
	}

	roleSet, err := s.roles.RolesForUser(ctx, identity.UserID)
	if err != nil {
		s.logger.ErrorContext(ctx, "role lookup failed, continuing with no roles",
			"user_id", identity.UserID, "error", err)
		roleSet = domainauth.NewRoleSet()
	}

	session := domainauth.Session{
		ID:          uuid.NewString(),
		UserID:      identity.UserID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		Roles:       roleSet.Slice(),
		ExpiresAt:   identity.ExpiresAt,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.InfoContext(ctx, "user signed in", "user_id", identity.UserID, "session_id", session.ID)
	s.publish(domainauth.Event{Kind: domainauth.EventSignedIn, Session: &session})
	return session, nil
}

// CompleteIdentity mints a session for an identity verified out of band
// (console SSO). It runs the same role load and publish as SignIn; only the
// credential exchange is skipped, since the SSO provider already did it.
func (s *AuthService) CompleteIdentity(ctx context.Context, identity domainauth.Identity) (domainauth.Session, error) {
	if identity.UserID == "" {
		return domainauth.Session{}, apperrors.Validation("identity has no user id")
	}

	roleSet, err := s.roles.RolesForUser(ctx, identity.UserID)
	if err != nil {
		s.logger.ErrorContext(ctx, "role lookup failed, continuing with no roles",
			"user_id", identity.UserID, "error", err)
		roleSet = domainauth.NewRoleSet()
	}

	session := domainauth.Session{
		ID:          uuid.NewString(),
		UserID:      identity.UserID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		Roles:       roleSet.Slice(),
		ExpiresAt:   identity.ExpiresAt,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.InfoContext(ctx, "console identity completed", "user_id", identity.UserID, "session_id", session.ID)
	s.publish(domainauth.Event{Kind: domainauth.EventSignedIn, Session: &session})
	return session, nil
}

// SignOut revokes sessions according to scope. Local scope deletes only the
// given session and publishes nothing; global scope revokes every session of
// the session's user and publishes SIGNED_OUT. Signing out an already-revoked
// session is a no-op.
func (s *AuthService) SignOut(ctx context.Context, sessionID string, scope domainauth.SignOutScope) error {
	if sessionID == "" {
		return nil
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("get session: %w", err)
	}

	if scope == domainauth.ScopeLocal {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		s.logger.InfoContext(ctx, "session revoked locally", "session_id", sessionID)
		return nil
	}

	if err := s.sessions.DeleteAllForUser(ctx, session.UserID); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	s.logger.InfoContext(ctx, "user signed out everywhere", "user_id", session.UserID)
	s.publish(domainauth.Event{Kind: domainauth.EventSignedOut})
	return nil
}

// CurrentSession returns the still-valid session for the id, or nil when it
// does not exist or has expired. Expired sessions are removed on the way out.
func (s *AuthService) CurrentSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, nil
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			s.logger.ErrorContext(ctx, "delete expired session", "session_id", sessionID, "error", err)
		}
		return nil, nil
	}
	return &session, nil
}

// Refresh extends a session's expiry and publishes TOKEN_REFRESHED.
// Consumers treat a refresh as a non-event for authorization purposes.
func (s *AuthService) Refresh(ctx context.Context, sessionID string, ttl time.Duration) (domainauth.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("get session: %w", err)
	}
	session.ExpiresAt = time.Now().Add(ttl)
	if err := s.sessions.Save(ctx, session); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	s.publish(domainauth.Event{Kind: domainauth.EventTokenRefreshed, Session: &session})
	return session, nil
}

func (s *AuthService) publish(ev domainauth.Event) {
	if s.events != nil {
		s.events.Publish(ev)
	}
}
