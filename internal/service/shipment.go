package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bkndhn/bazaar-api/internal/domain/order"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// ShipmentServiceOptions groups dependencies for ShipmentService.
type ShipmentServiceOptions struct {
	Orders   ports.OrderRepository
	Settings ports.ShippingSettingsRepository
	Tracker  ports.CarrierTracker // optional
	Logger   *slog.Logger
}

// ShipmentService syncs order statuses with the shipping carrier. Each sync
// advances the order exactly one step along the fulfillment chain and writes
// an audit row; the guarded update in the repository makes concurrent syncs
// settle to a single winner.
type ShipmentService struct {
	orders   ports.OrderRepository
	settings ports.ShippingSettingsRepository
	tracker  ports.CarrierTracker
	logger   *slog.Logger
}

// NewShipmentService constructs a new ShipmentService.
func NewShipmentService(opts ShipmentServiceOptions) *ShipmentService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ShipmentService{
		orders:   opts.Orders,
		settings: opts.Settings,
		tracker:  opts.Tracker,
		logger:   logger,
	}
}

// SyncResult reports the transition a sync performed.
type SyncResult struct {
	OrderID    string       `json:"order_id"`
	FromStatus order.Status `json:"from_status"`
	ToStatus   order.Status `json:"to_status"`
}

// SyncStatus advances the order one step along the fulfillment chain.
// Preconditions, each surfaced as a distinct error:
//   - the shipping integration is enabled for the store (configuration)
//   - the order belongs to the store admin and has a tracking number
//   - the current status is syncable (confirmed through out_for_delivery)
//
// When a carrier tracker is wired, its reported status is consulted: the
// order only advances when the carrier is at or beyond the next step.
func (s *ShipmentService) SyncStatus(ctx context.Context, orderID, adminID string) (*SyncResult, error) {
	if orderID == "" || adminID == "" {
		return nil, apperrors.Validation("order id and admin id are required")
	}

	settings, err := s.settings.ForAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !settings.IntegrationEnabled {
		return nil, apperrors.Configuration("shipping integration is disabled for store")
	}

	o, err := s.orders.GetForAdmin(ctx, orderID, adminID)
	if err != nil {
		return nil, err
	}
	if o.TrackingNumber == nil || *o.TrackingNumber == "" {
		return nil, apperrors.ValidationField("tracking_number", "order has no tracking number")
	}

	next, ok := order.NextSyncStatus(o.Status)
	if !ok {
		return nil, apperrors.Conflictf("order status %q cannot be synced", o.Status)
	}

	note := "carrier sync"
	if s.tracker != nil {
		carrierStatus, err := s.tracker.Track(ctx, *o.TrackingNumber)
		if err != nil {
			// Tracker outages are transient; single-step advancement is still
			// safe because the chain never skips.
			s.logger.ErrorContext(ctx, "carrier tracking failed, advancing one step",
				"order_id", orderID, "error", err)
		} else {
			if !carrierAtOrBeyond(carrierStatus, next) {
				return nil, apperrors.Conflictf("carrier still reports %q", carrierStatus)
			}
			note = fmt.Sprintf("carrier sync (%s: %s)", settings.CarrierName, carrierStatus)
		}
	}

	change := order.StatusChange{
		OrderID:    o.ID,
		FromStatus: o.Status,
		ToStatus:   next,
		Note:       note,
	}
	if err := s.orders.AdvanceStatus(ctx, change); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order status synced",
		"order_id", o.ID, "from", o.Status, "to", next)
	return &SyncResult{OrderID: o.ID, FromStatus: o.Status, ToStatus: next}, nil
}

// History lists the order's audit trail, newest first, scoped to the store.
func (s *ShipmentService) History(ctx context.Context, orderID, adminID string) ([]*order.StatusChange, error) {
	if _, err := s.orders.GetForAdmin(ctx, orderID, adminID); err != nil {
		return nil, err
	}
	return s.orders.StatusHistory(ctx, orderID)
}

// chainRank orders statuses along the fulfillment chain for carrier
// comparison. Unknown carrier statuses rank below everything so they never
// force an advance.
var chainRank = map[order.Status]int{
	order.StatusConfirmed:      1,
	order.StatusShipped:        2,
	order.StatusOutForDelivery: 3,
	order.StatusDelivered:      4,
}

func carrierAtOrBeyond(carrierStatus string, next order.Status) bool {
	got, ok := chainRank[order.Status(carrierStatus)]
	if !ok {
		return false
	}
	return got >= chainRank[next]
}
