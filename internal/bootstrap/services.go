package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/bkndhn/bazaar-api/config"
	"github.com/bkndhn/bazaar-api/internal/adapters/carrier"
	"github.com/bkndhn/bazaar-api/internal/adapters/payment"
	"github.com/bkndhn/bazaar-api/internal/adapters/redisauth"
	"github.com/bkndhn/bazaar-api/internal/data"
	"github.com/bkndhn/bazaar-api/internal/observability/metrics"
	"github.com/bkndhn/bazaar-api/internal/observability/statsd"
	"github.com/bkndhn/bazaar-api/internal/ports"
	"github.com/bkndhn/bazaar-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Events   *service.EventBus
	Auth     *service.AuthService
	Tenants  *service.TenantService
	Payments *service.PaymentService
	Shipment *service.ShipmentService
	Accounts *service.AccountService

	ConsoleProvider ports.ConsoleAuthProvider
	Sessions        ports.SessionStore
	StatusFeed      ports.StatusFeed
	Roles           ports.RoleRepository
	AccountStatus   ports.AccountStatusRepository

	Observability ObservabilityContainer
}

// NewGatewayCoordinator builds a session coordinator for one storefront
// gateway instance, sharing the container's auth service, event bus, and
// metrics sink. The caller owns Start and Close.
func (c ServiceContainer) NewGatewayCoordinator(logger *slog.Logger) *service.SessionCoordinator {
	return service.NewSessionCoordinator(service.SessionCoordinatorOptions{
		Auth:    c.Auth,
		Events:  c.Events,
		Roles:   c.Roles,
		Status:  c.AccountStatus,
		Feed:    c.StatusFeed,
		Logger:  logger,
		Metrics: c.Observability.SessionMetrics,
	})
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink    *statsd.Client
	SessionMetrics *metrics.SessionMetrics
	PaymentMetrics *metrics.PaymentMetrics
	MetricsConfig  config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB                     *sql.DB
	Redis                  redis.UniversalClient
	UserRepo               *data.UserRepo
	RoleRepo               *data.RoleRepo
	TenantRepo             *data.TenantRepo
	OrderRepo              *data.OrderRepo
	AccountStatusRepo      *data.AccountStatusRepo
	PaymentCredentialsRepo *data.PaymentCredentialsRepo
	ShippingSettingsRepo   *data.ShippingSettingsRepo
	CacheRepo              *data.RedisCacheRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redisClient redis.UniversalClient) *serviceRepositories {
	repos := &serviceRepositories{
		DB:                     db,
		Redis:                  redisClient,
		UserRepo:               data.NewUserRepo(db),
		RoleRepo:               data.NewRoleRepo(db),
		TenantRepo:             data.NewTenantRepo(db),
		OrderRepo:              data.NewOrderRepo(db),
		AccountStatusRepo:      data.NewAccountStatusRepo(db),
		PaymentCredentialsRepo: data.NewPaymentCredentialsRepo(db),
		ShippingSettingsRepo:   data.NewShippingSettingsRepo(db),
	}
	if redisClient != nil {
		repos.CacheRepo = data.NewRedisCacheRepo(redisClient)
	}
	return repos
}

// buildObservability configures the metrics sink.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  cfg.Metrics.Prefix,
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	container := ObservabilityContainer{
		MetricsSink:   metricsSink,
		MetricsConfig: cfg.Metrics,
	}
	if metricsSink != nil {
		container.SessionMetrics = metrics.NewSessionMetrics(metricsSink)
		container.PaymentMetrics = metrics.NewPaymentMetrics(metricsSink)
	}
	return container
}

func buildPaymentGateway(cfg config.PaymentsConfig, logger *slog.Logger) ports.PaymentGateway {
	if !cfg.IsEnabled() {
		return nil
	}
	gw, err := payment.NewGateway(payment.Config{BaseURL: cfg.ProviderBaseURL})
	if err != nil {
		if logger != nil {
			logger.Warn("failed to create payment gateway; payments disabled", "error", err)
		}
		return nil
	}
	return gw
}

func buildCarrierTracker(cfg config.ShippingConfig, logger *slog.Logger) ports.CarrierTracker {
	if !cfg.IsEnabled() {
		return nil
	}
	tracker, err := carrier.NewTracker(carrier.Config{
		BaseURL:    cfg.CarrierBaseURL,
		APIKey:     cfg.CarrierAPIKey,
		StatusExpr: cfg.StatusExpr,
		StatusMap:  cfg.StatusMap,
	})
	if err != nil {
		if logger != nil {
			logger.Warn("failed to create carrier tracker; syncs will not consult the carrier", "error", err)
		}
		return nil
	}
	return tracker
}

// NewServices initializes all application services.
func NewServices(deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}

	repos := buildRepositories(deps.DB, deps.RedisClient)
	observability := buildObservability(logger, cfg.Observability)

	events := service.NewEventBus()

	var sessions ports.SessionStore
	var feed ports.StatusFeed
	if deps.RedisClient != nil {
		sessions = redisauth.NewSessionStoreWithPrefix(deps.RedisClient, "session:")
		feed = redisauth.NewStatusFeed(deps.RedisClient, logger)
	}

	auth := BuildAuthService(AuthDeps{
		Auth:     cfg.Auth,
		Sessions: sessions,
		Users:    repos.UserRepo,
		Roles:    repos.RoleRepo,
		Events:   events,
		Logger:   logger,
	})

	tenants := service.NewTenantService(service.TenantServiceOptions{
		Repo:     repos.TenantRepo,
		Writer:   repos.TenantRepo,
		Cache:    repos.CacheRepo,
		CacheTTL: cfg.Cache.StoreTTL,
		Logger:   logger,
	})

	payments := service.NewPaymentService(service.PaymentServiceOptions{
		Credentials: repos.PaymentCredentialsRepo,
		Gateway:     buildPaymentGateway(cfg.Payments, logger),
		Logger:      logger,
		Metrics:     observability.PaymentMetrics,
	})

	shipment := service.NewShipmentService(service.ShipmentServiceOptions{
		Orders:   repos.OrderRepo,
		Settings: repos.ShippingSettingsRepo,
		Tracker:  buildCarrierTracker(cfg.Shipping, logger),
		Logger:   logger,
	})

	accounts := service.NewAccountService(service.AccountServiceOptions{
		Status:   repos.AccountStatusRepo,
		Feed:     feed,
		Sessions: sessions,
		Logger:   logger,
	})

	return ServiceContainer{
		Events:          events,
		Auth:            auth,
		Tenants:         tenants,
		Payments:        payments,
		Shipment:        shipment,
		Accounts:        accounts,
		ConsoleProvider: BuildConsoleProvider(cfg.Auth, cfg.IsDev, logger),
		Sessions:        sessions,
		StatusFeed:      feed,
		Roles:           repos.RoleRepo,
		AccountStatus:   repos.AccountStatusRepo,
		Observability:   observability,
	}
}
