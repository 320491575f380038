package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkndhn/bazaar-api/config"
	"github.com/bkndhn/bazaar-api/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewServicesWithoutInfrastructure(t *testing.T) {
	container := NewServices(&ServiceDeps{Config: &config.AppConfig{}, Logger: discardLogger()})

	assert.NotNil(t, container.Events)
	assert.NotNil(t, container.Tenants)
	assert.NotNil(t, container.Roles)
	assert.NotNil(t, container.AccountStatus)
	assert.Nil(t, container.Auth, "auth requires a session store")
	assert.Nil(t, container.Sessions)
}

func TestNewGatewayCoordinatorLifecycle(t *testing.T) {
	container := NewServices(&ServiceDeps{Config: &config.AppConfig{}, Logger: discardLogger()})

	coord := container.NewGatewayCoordinator(discardLogger())
	require.NotNil(t, coord)

	coord.Start(context.Background(), "")
	defer coord.Close()

	require.Eventually(t, func() bool {
		return coord.Snapshot().Phase == service.PhaseAnonymous
	}, 2*time.Second, 10*time.Millisecond)
}
