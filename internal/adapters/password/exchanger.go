package password

// Package password implements the credential exchanger over a local
// credential store with bcrypt hashing.

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bkndhn/bazaar-api/internal/data"
	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// CredentialStore is the slice of the user repository the exchanger needs.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*data.UserRecord, error)
	Create(ctx context.Context, u *data.UserRecord) (*data.UserRecord, error)
}

const minPasswordLength = 8

// Exchanger verifies and creates password credentials.
type Exchanger struct {
	users      CredentialStore
	cost       int
	sessionTTL time.Duration
}

// ExchangerOptions groups dependencies for Exchanger.
type ExchangerOptions struct {
	Users CredentialStore
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
	// SessionTTL bounds the identity validity window handed to the caller.
	SessionTTL time.Duration
}

// NewExchanger constructs an Exchanger.
func NewExchanger(opts ExchangerOptions) (*Exchanger, error) {
	if opts.Users == nil {
		return nil, errors.New("credential store is required")
	}
	cost := opts.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Exchanger{users: opts.Users, cost: cost, sessionTTL: ttl}, nil
}

// SignUp creates the credential. Role assignment happens elsewhere; a fresh
// account holds no roles.
func (e *Exchanger) SignUp(ctx context.Context, in ports.SignUpInput) (domainauth.Identity, error) {
	email := data.NormalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return domainauth.Identity{}, apperrors.ValidationField("email", "a valid email is required")
	}
	if len(in.Password) < minPasswordLength {
		return domainauth.Identity{}, apperrors.ValidationField("password",
			fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), e.cost)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	rec, err := e.users.Create(ctx, &data.UserRecord{
		Email:        email,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			return domainauth.Identity{}, apperrors.Conflict("an account with this email already exists")
		}
		return domainauth.Identity{}, fmt.Errorf("create user: %w", err)
	}

	return e.identity(rec), nil
}

// Verify checks the credential and returns the identity on success.
// Unknown email and wrong password are indistinguishable to the caller.
func (e *Exchanger) Verify(ctx context.Context, email, password string) (domainauth.Identity, error) {
	rec, err := e.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return domainauth.Identity{}, apperrors.Unauthorized("invalid email or password")
		}
		return domainauth.Identity{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(password)); err != nil {
		return domainauth.Identity{}, apperrors.Unauthorized("invalid email or password")
	}

	return e.identity(rec), nil
}

func (e *Exchanger) identity(rec *data.UserRecord) domainauth.Identity {
	return domainauth.Identity{
		UserID:      rec.ID,
		Email:       rec.Email,
		DisplayName: rec.DisplayName,
		ExpiresAt:   time.Now().Add(e.sessionTTL),
	}
}

var _ ports.CredentialExchanger = (*Exchanger)(nil)
