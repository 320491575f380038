package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bkndhn/bazaar-api/internal/domain/order"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/mocks"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

type shipmentFixture struct {
	orders   *mocks.MockOrderRepository
	settings *mocks.MockShippingSettingsRepository
	tracker  *mocks.MockCarrierTracker
}

func newShipmentFixture(t *testing.T, withTracker bool) (*ShipmentService, *shipmentFixture) {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &shipmentFixture{
		orders:   mocks.NewMockOrderRepository(ctrl),
		settings: mocks.NewMockShippingSettingsRepository(ctrl),
		tracker:  mocks.NewMockCarrierTracker(ctrl),
	}
	opts := ShipmentServiceOptions{Orders: f.orders, Settings: f.settings}
	if withTracker {
		opts.Tracker = f.tracker
	}
	return NewShipmentService(opts), f
}

func trackingNumber(n string) *string { return &n }

func enabledSettings() *ports.ShippingSettings {
	return &ports.ShippingSettings{AdminID: "admin-1", IntegrationEnabled: true, CarrierName: "shiprocket"}
}

func TestShipmentService_SyncAdvancesOneStep(t *testing.T) {
	svc, f := newShipmentFixture(t, false)

	f.settings.EXPECT().ForAdmin(gomock.Any(), "admin-1").Return(enabledSettings(), nil)
	f.orders.EXPECT().GetForAdmin(gomock.Any(), "order-1", "admin-1").Return(&order.Order{
		ID: "order-1", TenantAdminID: "admin-1", Status: order.StatusConfirmed,
		TrackingNumber: trackingNumber("TRK123"),
	}, nil)
	f.orders.EXPECT().AdvanceStatus(gomock.Any(), order.StatusChange{
		OrderID:    "order-1",
		FromStatus: order.StatusConfirmed,
		ToStatus:   order.StatusShipped,
		Note:       "carrier sync",
	}).Return(nil)

	res, err := svc.SyncStatus(context.Background(), "order-1", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, res.FromStatus)
	assert.Equal(t, order.StatusShipped, res.ToStatus)
}

func TestShipmentService_SyncDisabledIntegration(t *testing.T) {
	svc, f := newShipmentFixture(t, false)

	f.settings.EXPECT().ForAdmin(gomock.Any(), "admin-1").Return(&ports.ShippingSettings{
		AdminID: "admin-1", IntegrationEnabled: false,
	}, nil)

	_, err := svc.SyncStatus(context.Background(), "order-1", "admin-1")
	assert.True(t, apperrors.IsConfiguration(err))
}

func TestShipmentService_SyncRequiresTrackingNumber(t *testing.T) {
	svc, f := newShipmentFixture(t, false)

	f.settings.EXPECT().ForAdmin(gomock.Any(), "admin-1").Return(enabledSettings(), nil)
	f.orders.EXPECT().GetForAdmin(gomock.Any(), "order-1", "admin-1").Return(&order.Order{
		ID: "order-1", TenantAdminID: "admin-1", Status: order.StatusConfirmed,
	}, nil)

	_, err := svc.SyncStatus(context.Background(), "order-1", "admin-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "tracking_number", apperrors.GetField(err))
}

func TestShipmentService_SyncRejectsTerminalStatuses(t *testing.T) {
	svc, f := newShipmentFixture(t, false)

	for _, status := range []order.Status{order.StatusPending, order.StatusDelivered, order.StatusCancelled} {
		f.settings.EXPECT().ForAdmin(gomock.Any(), "admin-1").Return(enabledSettings(), nil)
		f.orders.EXPECT().GetForAdmin(gomock.Any(), "order-1", "admin-1").Return(&order.Order{
			ID: "order-1", TenantAdminID: "admin-1", Status: status,
			TrackingNumber: trackingNumber("TRK123"),
		}, nil)

		_, err := svc.SyncStatus(context.Background(), "order-1", "admin-1")
		assert.True(t, apperrors.IsConflict(err), "status %s must not sync", status)
	}
}

func TestShipmentService_SyncConsultsCarrier(t *testing.T) {
	svc, f := newShipmentFixture(t, true)

	// Carrier already reports delivered: advancing confirmed -> shipped is fine.
	f.settings.EXPECT().ForAdmin(gomock.Any(), "admin-1").Return(enabledSettings(), nil)
	f.orders.EXPECT().GetForAdmin(gomock.Any(), "order-1", "admin-1").Return(&order.Order{
		ID: "order-1", TenantAdminID: "admin-1", Status: order.StatusConfirmed,
		TrackingNumber: trackingNumber("TRK123"),
	}, nil)
	f.tracker.EXPECT().Track(gomock.Any(), "TRK123").Return("delivered", nil)
	f.orders.EXPECT().AdvanceStatus(gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.SyncStatus(context.Background(), "order-1", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, res.ToStatus, "sync advances one step even when the carrier is further ahead")
}

func TestShipmentService_SyncCarrierBehind(t *testing.T) {
	svc, f := newShipmentFixture(t, true)

	f.settings.EXPECT().ForAdmin(gomock.Any(), "admin-1").Return(enabledSettings(), nil)
	f.orders.EXPECT().GetForAdmin(gomock.Any(), "order-1", "admin-1").Return(&order.Order{
		ID: "order-1", TenantAdminID: "admin-1", Status: order.StatusShipped,
		TrackingNumber: trackingNumber("TRK123"),
	}, nil)
	f.tracker.EXPECT().Track(gomock.Any(), "TRK123").Return("shipped", nil)

	_, err := svc.SyncStatus(context.Background(), "order-1", "admin-1")
	assert.True(t, apperrors.IsConflict(err), "order must not advance past the carrier")
}

func TestShipmentService_SyncTrackerFailureFallsBack(t *testing.T) {
	svc, f := newShipmentFixture(t, true)

	f.settings.EXPECT().ForAdmin(gomock.Any(), "admin-1").Return(enabledSettings(), nil)
	f.orders.EXPECT().GetForAdmin(gomock.Any(), "order-1", "admin-1").Return(&order.Order{
		ID: "order-1", TenantAdminID: "admin-1", Status: order.StatusConfirmed,
		TrackingNumber: trackingNumber("TRK123"),
	}, nil)
	f.tracker.EXPECT().Track(gomock.Any(), "TRK123").Return("", assert.AnError)
	f.orders.EXPECT().AdvanceStatus(gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.SyncStatus(context.Background(), "order-1", "admin-1")
	require.NoError(t, err, "tracker outage falls back to single-step advancement")
	assert.Equal(t, order.StatusShipped, res.ToStatus)
}

func TestShipmentService_SyncConcurrentLoser(t *testing.T) {
	svc, f := newShipmentFixture(t, false)

	f.settings.EXPECT().ForAdmin(gomock.Any(), "admin-1").Return(enabledSettings(), nil)
	f.orders.EXPECT().GetForAdmin(gomock.Any(), "order-1", "admin-1").Return(&order.Order{
		ID: "order-1", TenantAdminID: "admin-1", Status: order.StatusConfirmed,
		TrackingNumber: trackingNumber("TRK123"),
	}, nil)
	f.orders.EXPECT().AdvanceStatus(gomock.Any(), gomock.Any()).
		Return(apperrors.Conflict("order status changed concurrently"))

	_, err := svc.SyncStatus(context.Background(), "order-1", "admin-1")
	assert.True(t, apperrors.IsConflict(err))
}

func TestShipmentService_History(t *testing.T) {
	svc, f := newShipmentFixture(t, false)

	f.orders.EXPECT().GetForAdmin(gomock.Any(), "order-1", "admin-1").Return(&order.Order{
		ID: "order-1", TenantAdminID: "admin-1", Status: order.StatusShipped,
	}, nil)
	f.orders.EXPECT().StatusHistory(gomock.Any(), "order-1").Return([]*order.StatusChange{
		{OrderID: "order-1", FromStatus: order.StatusConfirmed, ToStatus: order.StatusShipped},
	}, nil)

	history, err := svc.History(context.Background(), "order-1", "admin-1")
	require.NoError(t, err)
	require.Len(t, history, 1)

	f.orders.EXPECT().GetForAdmin(gomock.Any(), "order-2", "admin-1").
		Return(nil, apperrors.NotFound("order not found"))
	_, err = svc.History(context.Background(), "order-2", "admin-1")
	assert.True(t, apperrors.IsNotFound(err), "history is scoped to the store")
}
