package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bkndhn/bazaar-api/internal/data/pgxutil"
	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
)

// AccountStatusRepo reads and writes the admin account status row.
type AccountStatusRepo struct {
	DB *sql.DB
}

// NewAccountStatusRepo creates a new AccountStatusRepo.
func NewAccountStatusRepo(db *sql.DB) *AccountStatusRepo {
	return &AccountStatusRepo{DB: db}
}

const statusForAdminQuery = `
	SELECT status
	FROM admin_accounts
	WHERE user_id = $1`

// StatusForAdmin returns the status for the admin identity. An identity with
// no admin account row is reported as active; the pause flag only exists once
// a super admin has acted on the account.
func (r *AccountStatusRepo) StatusForAdmin(ctx context.Context, userID string) (domainauth.AccountStatus, error) {
	var status string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, statusForAdminQuery, userID).Scan(&status)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainauth.AccountActive, nil
		}
		return "", fmt.Errorf("failed to fetch admin account status: %w", err)
	}
	return domainauth.AccountStatus(status), nil
}

// SetStatus upserts the status row for the admin identity.
func (r *AccountStatusRepo) SetStatus(ctx context.Context, userID string, status domainauth.AccountStatus) error {
	if status != domainauth.AccountActive && status != domainauth.AccountPaused {
		return apperrors.Validationf("invalid account status %q", status)
	}
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO admin_accounts (user_id, status, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (user_id) DO UPDATE SET status = EXCLUDED.status, updated_at = now()`,
			userID, string(status))
		return execErr
	})
	if err != nil {
		return mapWriteErr(err)
	}
	return nil
}
