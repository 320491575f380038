package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bkndhn/bazaar-api/internal/data/pgxutil"
	"github.com/bkndhn/bazaar-api/internal/domain/tenant"
)

// TenantRepo provides database operations for storefront tenants.
type TenantRepo struct {
	DB *sql.DB
}

// NewTenantRepo creates a new TenantRepo.
func NewTenantRepo(db *sql.DB) *TenantRepo {
	return &TenantRepo{DB: db}
}

const tenantColumns = `id, slug, name, admin_id, is_active, custom_domain, created_at, updated_at`

const (
	tenantGetBySlugQuery = `
		SELECT ` + tenantColumns + `
		FROM stores
		WHERE slug = $1 AND is_active`

	tenantGetByIDQuery = `
		SELECT ` + tenantColumns + `
		FROM stores
		WHERE id = $1`

	tenantListQuery = `
		SELECT ` + tenantColumns + `
		FROM stores
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)

// GetBySlug retrieves the active tenant for a slug. Inactive stores resolve
// as not found so paused storefronts disappear from the path.
func (r *TenantRepo) GetBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	return r.getByQuery(ctx, tenantGetBySlugQuery, "tenant not found", strings.TrimSpace(slug))
}

// GetByID retrieves a tenant by internal id regardless of active flag.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	return r.getByQuery(ctx, tenantGetByIDQuery, "tenant not found", id)
}

// List retrieves tenants with pagination, newest first.
func (r *TenantRepo) List(ctx context.Context, limit, offset int) ([]*tenant.Tenant, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []tenant.Tenant
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, tenantListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[tenant.Tenant])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	res := make([]*tenant.Tenant, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Create inserts a new store. The slug is validated and immutable afterwards.
func (r *TenantRepo) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	if err := tenant.ValidateSlug(t.Slug); err != nil {
		return nil, err
	}
	if t.CustomDomain != nil {
		if err := tenant.ValidateCustomDomain(*t.CustomDomain); err != nil {
			return nil, err
		}
	}

	var out tenant.Tenant
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO stores (slug, name, admin_id, is_active, custom_domain)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+tenantColumns,
			t.Slug, strings.TrimSpace(t.Name), t.AdminID, t.IsActive, t.CustomDomain)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[tenant.Tenant])
		return err
	}); err != nil {
		return nil, mapWriteErr(err)
	}
	return &out, nil
}

// SetActive toggles the storefront active flag.
func (r *TenantRepo) SetActive(ctx context.Context, id string, active bool) error {
	return pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			UPDATE stores SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
		return err
	})
}

// getByQuery executes a query returning a single tenant row.
func (r *TenantRepo) getByQuery(
	ctx context.Context,
	q string,
	notFoundMsg string,
	args ...any,
) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		t, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[tenant.Tenant])
		return err
	})
	if err != nil {
		return nil, mapReadErr(err, notFoundMsg)
	}
	return &t, nil
}
