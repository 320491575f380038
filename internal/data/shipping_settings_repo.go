package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/bkndhn/bazaar-api/internal/data/pgxutil"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// ShippingSettingsRepo reads per-tenant carrier integration settings.
type ShippingSettingsRepo struct {
	DB *sql.DB
}

// NewShippingSettingsRepo creates a new ShippingSettingsRepo.
func NewShippingSettingsRepo(db *sql.DB) *ShippingSettingsRepo {
	return &ShippingSettingsRepo{DB: db}
}

const shippingSettingsQuery = `
	SELECT admin_id, integration_enabled, carrier_name
	FROM shipping_settings
	WHERE admin_id = $1`

// ForAdmin returns the tenant's shipping settings. A tenant without a row is
// treated as integration disabled, which the sync bridge reports as a
// configuration error.
func (r *ShippingSettingsRepo) ForAdmin(ctx context.Context, adminID string) (*ports.ShippingSettings, error) {
	var settings ports.ShippingSettings
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, shippingSettingsQuery, adminID).
			Scan(&settings.AdminID, &settings.IntegrationEnabled, &settings.CarrierName)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Configuration("shipping integration not configured for store")
		}
		return nil, err
	}
	return &settings, nil
}
