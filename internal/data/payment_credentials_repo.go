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

// PaymentCredentialsRepo reads per-tenant payment provider credentials.
type PaymentCredentialsRepo struct {
	DB *sql.DB
}

// NewPaymentCredentialsRepo creates a new PaymentCredentialsRepo.
func NewPaymentCredentialsRepo(db *sql.DB) *PaymentCredentialsRepo {
	return &PaymentCredentialsRepo{DB: db}
}

const paymentCredentialsQuery = `
	SELECT admin_id, key_id, key_secret
	FROM payment_credentials
	WHERE admin_id = $1`

// ForAdmin returns the tenant's payment credentials. Absence surfaces as a
// configuration error so the payment bridge can answer with a 4xx payload.
func (r *PaymentCredentialsRepo) ForAdmin(ctx context.Context, adminID string) (*ports.PaymentCredentials, error) {
	var creds ports.PaymentCredentials
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, paymentCredentialsQuery, adminID).
			Scan(&creds.AdminID, &creds.KeyID, &creds.Secret)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Configuration("payment credentials not configured for store")
		}
		return nil, err
	}
	return &creds, nil
}
