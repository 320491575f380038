package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bkndhn/bazaar-api/config"
	httpx "github.com/bkndhn/bazaar-api/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Auth:            cfg.Services.Auth,
		Tenants:         cfg.Services.Tenants,
		Payments:        cfg.Services.Payments,
		Shipment:        cfg.Services.Shipment,
		Accounts:        cfg.Services.Accounts,
		ConsoleProvider: cfg.Services.ConsoleProvider,
		CookieDomain:    appCfg.HTTP.CookieDomain,
		Logger:          logger,
	}
	if cfg.Services.Auth != nil {
		services.ConsoleComplete = cfg.Services.Auth.CompleteIdentity
	}

	handler := httpx.NewRouter(services)

	server := startServer(logger, handler, appCfg.HTTP.Addr)
	return server
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// RunWithShutdown blocks until SIGINT or SIGTERM, then drains the HTTP
// server and any open metrics sink.
func RunWithShutdown(ctx context.Context, server *http.Server, services ServiceContainer, logger *slog.Logger) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.InfoContext(ctx, "shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.InfoContext(ctx, "context cancelled, shutting down")
	}

	return Shutdown(ctx, server, services, logger)
}

// Shutdown gracefully stops the HTTP server and closes observability sinks.
func Shutdown(ctx context.Context, server *http.Server, services ServiceContainer, logger *slog.Logger) error {
	if logger != nil {
		logger.InfoContext(ctx, "shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	if server != nil {
		err = server.Shutdown(shutdownCtx)
	}

	if sink := services.Observability.MetricsSink; sink != nil {
		if cerr := sink.Close(); cerr != nil && logger != nil {
			logger.ErrorContext(ctx, "close metrics sink failed", "error", cerr)
		}
	}

	if err == nil && logger != nil {
		logger.InfoContext(ctx, "HTTP server stopped")
	}
	return err
}
