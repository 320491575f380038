package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleSuperAdmin      Role = "super_admin"
	RoleAdmin           Role = "admin"
	RoleUser            Role = "user"
	RoleDeliveryPartner Role = "delivery_partner"
)

// ParseRole maps a string onto a known Role. Unknown names report false.
func ParseRole(name string) (Role, bool) {
	switch r := Role(name); r {
	case RoleSuperAdmin, RoleAdmin, RoleUser, RoleDeliveryPartner:
		return r, true
	default:
		return "", false
	}
}

// RoleSet is an unordered set of roles held by an identity.
// A user may hold several roles at once; membership carries no order.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

// Has reports whether the set contains the given role.
func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// IsEmpty reports whether the set holds no roles.
func (s RoleSet) IsEmpty() bool { return len(s) == 0 }

// Slice returns the roles as a slice in unspecified order.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	return out
}

// Clone returns an independent copy of the set.
func (s RoleSet) Clone() RoleSet {
	out := make(RoleSet, len(s))
	for r := range s {
		out[r] = struct{}{}
	}
	return out
}

// AccountStatus is the suspension flag on an identity that holds the admin
// role. A paused admin must be treated as unauthenticated regardless of role
// membership, including mid-session.
type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountPaused AccountStatus = "paused"
)

// Identity represents the authenticated principal.
// Adapters map provider- or credential-store-specific records into this shape.
type Identity struct {
	UserID      string
	Email       string
	DisplayName string
	ExpiresAt   time.Time // absolute expiry from the credential exchange
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Roles       []Role    `json:"roles"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// RoleSet returns the session's roles as a set.
func (s Session) RoleSet() RoleSet { return NewRoleSet(s.Roles...) }

// EventKind identifies an auth event delivered on the event stream.
type EventKind string

const (
	EventSignedIn       EventKind = "SIGNED_IN"
	EventSignedOut      EventKind = "SIGNED_OUT"
	EventTokenRefreshed EventKind = "TOKEN_REFRESHED"
	EventInitialSession EventKind = "INITIAL_SESSION"
)

// Event is an asynchronous auth notification. Session is nil on sign-out.
type Event struct {
	Kind    EventKind
	Session *Session
}

// SignOutScope selects how far a sign-out propagates. ScopeLocal invalidates
// the current session only and does not fan out on the event stream; it exists
// so that pause detection cannot re-trigger listeners and loop.
type SignOutScope string

const (
	ScopeLocal  SignOutScope = "local"
	ScopeGlobal SignOutScope = "global"
)
