package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.IsDev {
		t.Errorf("IsDev = true, want false by default")
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Host != "localhost" || cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres defaults = %s:%d, want localhost:5432", cfg.Postgres.Host, cfg.Postgres.Port)
	}
	if !cfg.Postgres.RunMigrationsOnStart {
		t.Errorf("RunMigrationsOnStart = false, want true by default")
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("Redis.URI = %q, want localhost:6379", cfg.Redis.URI)
	}
	if cfg.Cache.StoreTTL != 5*time.Minute {
		t.Errorf("Cache.StoreTTL = %v, want 5m", cfg.Cache.StoreTTL)
	}
	if cfg.Auth.ConsoleMode != ConsoleAuthOff {
		t.Errorf("Auth.ConsoleMode = %q, want off", cfg.Auth.ConsoleMode)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("Auth.SessionTTL = %v, want 24h", cfg.Auth.SessionTTL)
	}
	if cfg.Payments.IsEnabled() {
		t.Errorf("Payments.IsEnabled() = true, want false without a provider URL")
	}
	if cfg.Shipping.IsEnabled() {
		t.Errorf("Shipping.IsEnabled() = true, want false without a carrier URL")
	}
	if cfg.Observability.Metrics.IsEnabled() {
		t.Errorf("Metrics.IsEnabled() = true, want false by default")
	}
}

func TestAuthConfigFromEnv(t *testing.T) {
	t.Setenv("CONSOLE_AUTH_MODE", "oidc")
	t.Setenv("CONSOLE_OIDC_CLIENT_ID", "bazaar-console")
	t.Setenv("CONSOLE_OIDC_CLIENT_SECRET", "super-secret")
	t.Setenv("CONSOLE_OIDC_REDIRECT_URL", "https://shop.example.com/console/auth/callback")
	t.Setenv("CONSOLE_OIDC_ISSUER_URL", "https://login.example.com")
	t.Setenv("CONSOLE_OIDC_SCOPE", "openid profile email")
	t.Setenv("AUTH_SESSION_TTL", "12h")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expected := OIDCConfig{
		ClientID:     "bazaar-console",
		ClientSecret: "super-secret",
		RedirectURL:  "https://shop.example.com/console/auth/callback",
		Scope:        "openid profile email",
		IssuerURL:    "https://login.example.com",
	}
	if !reflect.DeepEqual(cfg.Auth.OIDC, expected) {
		t.Errorf("Auth.OIDC = %+v, want %+v", cfg.Auth.OIDC, expected)
	}
	if cfg.Auth.ConsoleMode != ConsoleAuthOIDC {
		t.Errorf("Auth.ConsoleMode = %q, want oidc", cfg.Auth.ConsoleMode)
	}
	if !cfg.Auth.IsOIDCConfigured() {
		t.Errorf("IsOIDCConfigured() = false, want true")
	}
	if cfg.Auth.SessionTTL != 12*time.Hour {
		t.Errorf("Auth.SessionTTL = %v, want 12h", cfg.Auth.SessionTTL)
	}
}

func TestConsoleAuthModeRejectsUnknownValues(t *testing.T) {
	t.Setenv("CONSOLE_AUTH_MODE", "ldap")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatalf("expected error for CONSOLE_AUTH_MODE=ldap, got none")
	}
}

func TestShippingStatusMapFromEnv(t *testing.T) {
	t.Setenv("CARRIER_BASE_URL", "https://track.example.com/v1/shipments")
	t.Setenv("CARRIER_STATUS_EXPR", "shipment.current_status")
	t.Setenv("CARRIER_STATUS_MAP", "in_transit:shipped,ofd:out_for_delivery")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if !cfg.Shipping.IsEnabled() {
		t.Fatalf("Shipping.IsEnabled() = false, want true")
	}
	expected := map[string]string{"in_transit": "shipped", "ofd": "out_for_delivery"}
	if !reflect.DeepEqual(cfg.Shipping.StatusMap, expected) {
		t.Errorf("Shipping.StatusMap = %v, want %v", cfg.Shipping.StatusMap, expected)
	}
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{
		Auth:     AuthConfig{SessionTTL: -time.Hour, BcryptCost: 99},
		Shipping: ShippingConfig{StatusExpr: "  "},
		Observability: ObservabilityConfig{
			Metrics: ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "   "},
		},
	}
	cfg.Sanitize()

	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h after sanitize", cfg.Auth.SessionTTL)
	}
	if cfg.Auth.BcryptCost != 31 {
		t.Errorf("BcryptCost = %d, want clamped to 31", cfg.Auth.BcryptCost)
	}
	if cfg.Shipping.StatusExpr != "status" {
		t.Errorf("StatusExpr = %q, want default after sanitize", cfg.Shipping.StatusExpr)
	}
	if cfg.Observability.Metrics.Enabled {
		t.Errorf("Metrics.Enabled = true, want disabled when address is blank")
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080 after sanitize", cfg.HTTP.Addr)
	}
}

func TestDetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Errorf("IsDev = false, want true with NODE_ENV=development")
	}
}
