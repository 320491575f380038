package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bkndhn/bazaar-api/internal/data/pgxutil"
	"github.com/bkndhn/bazaar-api/internal/domain/order"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
)

// OrderRepo provides the order reads and status writes the bridges need.
type OrderRepo struct {
	DB *sql.DB
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{DB: db}
}

const orderColumns = `id, tenant_admin_id, user_id, status, tracking_number, total_amount, currency, created_at, updated_at`

const orderGetForAdminQuery = `
	SELECT ` + orderColumns + `
	FROM orders
	WHERE id = $1 AND tenant_admin_id = $2`

// GetForAdmin returns the order only when it belongs to the tenant admin.
// Cross-tenant ids are indistinguishable from missing ones.
func (r *OrderRepo) GetForAdmin(ctx context.Context, orderID, adminID string) (*order.Order, error) {
	var o order.Order
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, orderGetForAdminQuery, orderID, adminID)
		if err != nil {
			return err
		}
		defer rows.Close()
		o, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[order.Order])
		return err
	})
	if err != nil {
		return nil, mapReadErr(err, "order not found")
	}
	return &o, nil
}

// AdvanceStatus updates the order status and writes the audit row in one
// transaction. The UPDATE is guarded on the expected current status, so a
// concurrent sync that already advanced the order makes this call fail
// instead of skipping ahead.
func (r *OrderRepo) AdvanceStatus(ctx context.Context, change order.StatusChange) error {
	if change.ID == "" {
		change.ID = uuid.New().String()
	}
	return pgxutil.WithPgxTx(ctx, r.DB, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `
			UPDATE orders
			SET status = $3, updated_at = now()
			WHERE id = $1 AND status = $2`,
			change.OrderID, string(change.FromStatus), string(change.ToStatus))
		if err != nil {
			return mapWriteErr(err)
		}
		if ct.RowsAffected() == 0 {
			return apperrors.Conflict("order status changed concurrently")
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO order_status_history (id, order_id, from_status, to_status, note)
			VALUES ($1, $2, $3, $4, $5)`,
			change.ID, change.OrderID, string(change.FromStatus), string(change.ToStatus), change.Note)
		if err != nil {
			return mapWriteErr(err)
		}
		return nil
	})
}

const statusHistoryQuery = `
	SELECT id, order_id, from_status, to_status, note, created_at
	FROM order_status_history
	WHERE order_id = $1
	ORDER BY created_at DESC`

// StatusHistory lists audit rows for the order, newest first.
func (r *OrderRepo) StatusHistory(ctx context.Context, orderID string) ([]*order.StatusChange, error) {
	var rowsOut []order.StatusChange
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, statusHistoryQuery, orderID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[order.StatusChange])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list order status history: %w", err)
	}

	res := make([]*order.StatusChange, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
