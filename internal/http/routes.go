package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	"github.com/bkndhn/bazaar-api/internal/ports"
	"github.com/bkndhn/bazaar-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     *service.AuthService
	Tenants  *service.TenantService
	Payments *service.PaymentService
	Shipment *service.ShipmentService
	Accounts *service.AccountService

	// ConsoleProvider is optional; console SSO routes register only when set.
	ConsoleProvider ports.ConsoleAuthProvider
	// ConsoleComplete turns a verified console identity into a session.
	ConsoleComplete func(ctx context.Context, identity domainauth.Identity) (domainauth.Session, error)

	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	authHandlers := &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: logger}
	mux.HandleFunc("POST /auth/signup", authHandlers.SignUp)
	mux.HandleFunc("POST /auth/signin", authHandlers.SignIn)
	mux.HandleFunc("POST /auth/signout", authHandlers.SignOut)
	mux.HandleFunc("GET /auth/session", authHandlers.Session)

	if services.ConsoleProvider != nil && services.ConsoleComplete != nil {
		consoleAuth := &ConsoleAuthHandlers{
			Provider:     services.ConsoleProvider,
			CompleteFn:   services.ConsoleComplete,
			CookieDomain: services.CookieDomain,
			Logger:       logger,
		}
		mux.HandleFunc("GET /console/auth/login", consoleAuth.Login)
		mux.HandleFunc("GET /console/auth/callback", consoleAuth.Callback)
	}

	tenantHandlers := &TenantHandlers{Svc: services.Tenants}
	mux.HandleFunc("GET /stores/resolve", tenantHandlers.Resolve)
	mux.HandleFunc("GET /stores/{slug}", tenantHandlers.Get)

	superAdmin := RequireRole(services.Auth, domainauth.RoleSuperAdmin)
	mux.Handle("GET /console/stores", superAdmin(http.HandlerFunc(tenantHandlers.List)))
	mux.Handle("POST /console/stores", superAdmin(http.HandlerFunc(tenantHandlers.Create)))
	mux.Handle("PATCH /console/stores/{id}/active", superAdmin(http.HandlerFunc(tenantHandlers.SetActive)))

	accountHandlers := &AccountHandlers{Svc: services.Accounts}
	mux.Handle("POST /console/accounts/{id}/pause", superAdmin(http.HandlerFunc(accountHandlers.Pause)))
	mux.Handle("POST /console/accounts/{id}/resume", superAdmin(http.HandlerFunc(accountHandlers.Resume)))
	mux.Handle("GET /console/accounts/{id}/status", superAdmin(http.HandlerFunc(accountHandlers.Status)))

	requireAuth := RequireAuth(services.Auth)
	paymentHandlers := &PaymentHandlers{Svc: services.Payments}
	mux.Handle("POST /payments/orders", requireAuth(http.HandlerFunc(paymentHandlers.CreateOrder)))
	mux.Handle("POST /payments/verify", requireAuth(http.HandlerFunc(paymentHandlers.Verify)))

	admin := RequireRole(services.Auth, domainauth.RoleAdmin)
	shipmentHandlers := &ShipmentHandlers{Svc: services.Shipment}
	mux.Handle("POST /admin/orders/{id}/sync", admin(http.HandlerFunc(shipmentHandlers.Sync)))
	mux.Handle("GET /admin/orders/{id}/history", admin(http.HandlerFunc(shipmentHandlers.History)))

	return Chain(mux, Recover(logger), Logging(logger))
}
