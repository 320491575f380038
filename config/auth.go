package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ConsoleAuthMode selects the SSO provider for the super-admin console.
type ConsoleAuthMode string

const (
	// ConsoleAuthOIDC uses OIDC for console sign-in.
	ConsoleAuthOIDC ConsoleAuthMode = "oidc"
	// ConsoleAuthDev uses the local dev provider (for development only).
	ConsoleAuthDev ConsoleAuthMode = "dev"
	// ConsoleAuthOff disables the console SSO routes entirely.
	ConsoleAuthOff ConsoleAuthMode = "off"
)

// UnmarshalText implements encoding.TextUnmarshaler for ConsoleAuthMode.
func (m *ConsoleAuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oidc", "dev", "off":
		*m = ConsoleAuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid ConsoleAuthMode: %q (valid options: oidc, dev, off)", v)
	}
}

// OIDCConfig contains OIDC configuration for the console.
type OIDCConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/console/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	IssuerURL    string `env:"ISSUER_URL"`
}

// DevAuthConfig controls the local console identity.
// Used when CONSOLE_AUTH_MODE=dev for development and testing.
type DevAuthConfig struct {
	UserID      string `env:"USER_ID"      envDefault:"dev-admin"`
	Email       string `env:"EMAIL"        envDefault:"dev@example.com"`
	DisplayName string `env:"DISPLAY_NAME" envDefault:"Dev Admin"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// ConsoleMode determines which console SSO provider to use.
	ConsoleMode ConsoleAuthMode `env:"CONSOLE_AUTH_MODE" envDefault:"off"`

	// OIDC configuration (used when ConsoleMode=oidc).
	OIDC OIDCConfig `envPrefix:"CONSOLE_OIDC_"`

	// DevAuth configuration (used when ConsoleMode=dev).
	DevAuth DevAuthConfig `envPrefix:"CONSOLE_DEV_"`

	// SessionTTL bounds shopper and admin sessions.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`

	// BcryptCost tunes the password hashing cost. Zero selects the
	// library default.
	BcryptCost int `env:"AUTH_BCRYPT_COST" envDefault:"0"`
}

// Sanitize applies guardrails to auth configuration values.
func (c *AuthConfig) Sanitize() {
	if c.SessionTTL <= 0 {
		c.SessionTTL = 24 * time.Hour
	}
	// Clamp cost to the range bcrypt accepts; out-of-range values would
	// otherwise fail every sign-up at runtime.
	if c.BcryptCost != 0 {
		if c.BcryptCost < bcrypt.MinCost {
			c.BcryptCost = bcrypt.MinCost
		}
		if c.BcryptCost > bcrypt.MaxCost {
			c.BcryptCost = bcrypt.MaxCost
		}
	}
}

// IsOIDCConfigured returns true when the OIDC mode has everything it needs.
func (c *AuthConfig) IsOIDCConfigured() bool {
	return c.OIDC.IssuerURL != "" && c.OIDC.ClientID != "" && c.OIDC.ClientSecret != ""
}
