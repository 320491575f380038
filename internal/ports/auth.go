package ports

// Package ports defines interfaces (hexagonal ports) for auth, tenant, and
// bridge behavior. Implementations live in internal/adapters and
// internal/data; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
)

// SignUpInput carries inputs for credential creation.
type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
}

// Authenticator owns credential exchange and session issuance.
// SignOut honors the scope: local revokes only the given session, global
// revokes every session for its user and fans out on the event stream.
type Authenticator interface {
	SignUp(ctx context.Context, in SignUpInput) (domainauth.Identity, error)
	SignIn(ctx context.Context, email, password string) (domainauth.Session, error)
	SignOut(ctx context.Context, sessionID string, scope domainauth.SignOutScope) error

	// CurrentSession returns the still-valid session for the id, or nil when
	// none exists. Used by Restore at process start.
	CurrentSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// CredentialExchanger creates and verifies password credentials.
// It knows nothing about sessions or roles; the auth service owns those.
type CredentialExchanger interface {
	SignUp(ctx context.Context, in SignUpInput) (domainauth.Identity, error)
	Verify(ctx context.Context, email, password string) (domainauth.Identity, error)
}

// AuthEvents delivers asynchronous auth notifications to subscribers.
// Every Subscribe must be paired with a call to the returned unsubscribe on
// every exit path.
type AuthEvents interface {
	Subscribe(handler func(domainauth.Event)) (unsubscribe func())
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteAllForUser removes every session bound to the user. Used by
	// global-scope sign-out.
	DeleteAllForUser(ctx context.Context, userID string) error
}

// RoleRepository fetches the authoritative role set for an identity.
// The caller never synthesizes roles; fetch failure degrades to empty.
type RoleRepository interface {
	RolesForUser(ctx context.Context, userID string) (domainauth.RoleSet, error)
}

// AccountStatusRepository reads and writes the admin account status row.
type AccountStatusRepository interface {
	StatusForAdmin(ctx context.Context, userID string) (domainauth.AccountStatus, error)
	SetStatus(ctx context.Context, userID string, status domainauth.AccountStatus) error
}

// StatusWatch is a standing subscription to one identity's account status.
// Updates must be drained from C; Close releases the server-side channel and
// must be called on every exit path, not merely dereferenced.
type StatusWatch interface {
	C() <-chan domainauth.AccountStatus
	Close() error
}

// StatusFeed provides realtime change notifications for admin account status.
type StatusFeed interface {
	Watch(ctx context.Context, userID string) (StatusWatch, error)
	Publish(ctx context.Context, userID string, status domainauth.AccountStatus) error
}

// BeginInput carries inputs for initiating a console SSO flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// ConsoleAuthProvider initiates and completes the super-admin console SSO
// flow against an IdP.
type ConsoleAuthProvider interface {
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}
