package ports

import (
	"context"

	"github.com/bkndhn/bazaar-api/internal/domain/order"
)

// OrderRepository provides the order reads and writes the bridges need.
type OrderRepository interface {
	// GetForAdmin returns the order only when it belongs to the given tenant
	// admin.
	GetForAdmin(ctx context.Context, orderID, adminID string) (*order.Order, error)

	// AdvanceStatus updates the order status and writes the audit row in one
	// transaction. It fails if the stored status no longer matches from.
	AdvanceStatus(ctx context.Context, change order.StatusChange) error

	// StatusHistory lists audit rows for the order, newest first.
	StatusHistory(ctx context.Context, orderID string) ([]*order.StatusChange, error)
}

// ShippingSettings is the per-tenant carrier integration row.
type ShippingSettings struct {
	AdminID            string
	IntegrationEnabled bool
	CarrierName        string
}

// ShippingSettingsRepository reads per-tenant shipping integration settings.
type ShippingSettingsRepository interface {
	ForAdmin(ctx context.Context, adminID string) (*ShippingSettings, error)
}

// CarrierTracker polls the carrier for the live status of a tracking number.
// Implementations may be mocks during development; the sync bridge treats a
// tracker failure as transient and falls back to single-step advancement.
type CarrierTracker interface {
	Track(ctx context.Context, trackingNumber string) (status string, err error)
}
