package bootstrap

import (
	"log/slog"

	"github.com/bkndhn/bazaar-api/config"
	"github.com/bkndhn/bazaar-api/internal/adapters/devauth"
	"github.com/bkndhn/bazaar-api/internal/adapters/oidc"
	"github.com/bkndhn/bazaar-api/internal/adapters/password"
	"github.com/bkndhn/bazaar-api/internal/data"
	"github.com/bkndhn/bazaar-api/internal/ports"
	"github.com/bkndhn/bazaar-api/internal/service"
)

// AuthDeps contains dependencies for auth service construction.
type AuthDeps struct {
	Auth     config.AuthConfig
	Sessions ports.SessionStore
	Users    *data.UserRepo
	Roles    *data.RoleRepo
	Events   *service.EventBus
	Logger   *slog.Logger
}

// BuildAuthService wires the password exchanger, session store, and role
// repository into an AuthService. Returns nil when the session store is
// missing, since sessions have nowhere to live.
func BuildAuthService(deps AuthDeps) *service.AuthService {
	if deps.Sessions == nil {
		if deps.Logger != nil {
			deps.Logger.Warn("auth service disabled: session store not configured")
		}
		return nil
	}

	exchanger, err := password.NewExchanger(password.ExchangerOptions{
		Users:      deps.Users,
		Cost:       deps.Auth.BcryptCost,
		SessionTTL: deps.Auth.SessionTTL,
	})
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.Warn("failed to create password exchanger, auth disabled", "error", err)
		}
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Exchanger: exchanger,
		Sessions:  deps.Sessions,
		Roles:     deps.Roles,
		Events:    deps.Events,
		Logger:    deps.Logger,
	})
}

// BuildConsoleProvider creates the console SSO provider for the configured
// mode. Returns nil when console SSO is off or misconfigured; the router
// simply skips the console auth routes in that case.
//
//nolint:ireturn // the provider port is what callers wire into the router.
func BuildConsoleProvider(cfg config.AuthConfig, isDev bool, logger *slog.Logger) ports.ConsoleAuthProvider {
	switch cfg.ConsoleMode {
	case config.ConsoleAuthDev:
		if !isDev {
			if logger != nil {
				logger.Warn("dev console auth requested outside dev mode; console SSO disabled")
			}
			return nil
		}
		prov, err := devauth.NewProvider(devauth.Config{
			UserID:          cfg.DevAuth.UserID,
			Email:           cfg.DevAuth.Email,
			DisplayName:     cfg.DevAuth.DisplayName,
			SessionDuration: cfg.SessionTTL,
		})
		if err != nil {
			if logger != nil {
				logger.Warn("failed to create dev console provider; console SSO disabled", "error", err)
			}
			return nil
		}
		return prov

	case config.ConsoleAuthOIDC:
		if !cfg.IsOIDCConfigured() {
			if logger != nil {
				logger.Warn("oidc console auth selected but required config missing; console SSO disabled",
					"issuer_url_empty", cfg.OIDC.IssuerURL == "",
					"client_id_empty", cfg.OIDC.ClientID == "",
					"client_secret_empty", cfg.OIDC.ClientSecret == "",
				)
			}
			return nil
		}
		prov, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     cfg.OIDC.ClientID,
			ClientSecret: cfg.OIDC.ClientSecret,
			RedirectURL:  cfg.OIDC.RedirectURL,
			Scope:        cfg.OIDC.Scope,
			IssuerURL:    cfg.OIDC.IssuerURL,
		})
		if err != nil {
			if logger != nil {
				logger.Warn("failed to create oidc console provider; console SSO disabled", "error", err)
			}
			return nil
		}
		return prov

	default:
		return nil
	}
}
