package httpx

import (
	"context"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	"github.com/bkndhn/bazaar-api/internal/domain/tenant"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

type tenantKey struct{}

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext retrieves the session from the request context, or
// nil when the request is unauthenticated.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok {
		return s
	}
	return nil
}

// SetTenantInContext returns a child context carrying the resolved store.
func SetTenantInContext(ctx context.Context, t *tenant.Tenant) context.Context {
	if t == nil {
		return ctx
	}
	return context.WithValue(ctx, tenantKey{}, t)
}

// GetTenantFromContext retrieves the resolved store, or nil for non-store
// routes.
func GetTenantFromContext(ctx context.Context) *tenant.Tenant {
	if t, ok := ctx.Value(tenantKey{}).(*tenant.Tenant); ok {
		return t
	}
	return nil
}
