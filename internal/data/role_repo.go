package data

// Package data provides PostgreSQL repositories for the bazaar system.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bkndhn/bazaar-api/internal/data/pgxutil"
	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
)

// RoleRepo reads role assignments for identities.
type RoleRepo struct {
	DB *sql.DB
}

// NewRoleRepo creates a new RoleRepo.
func NewRoleRepo(db *sql.DB) *RoleRepo {
	return &RoleRepo{DB: db}
}

const rolesForUserQuery = `
	SELECT role
	FROM user_roles
	WHERE user_id = $1`

// RolesForUser returns the role set assigned to the user. A user with no
// assignments yields an empty set, not an error.
func (r *RoleRepo) RolesForUser(ctx context.Context, userID string) (domainauth.RoleSet, error) {
	var roles []string
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, rolesForUserQuery, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		roles, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to fetch roles for user: %w", err)
	}

	set := make(domainauth.RoleSet, len(roles))
	for _, role := range roles {
		set[domainauth.Role(role)] = struct{}{}
	}
	return set, nil
}

// Assign grants a role to the user. Assigning an already-held role is a no-op.
func (r *RoleRepo) Assign(ctx context.Context, userID string, role domainauth.Role) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO user_roles (user_id, role)
			VALUES ($1, $2)
			ON CONFLICT (user_id, role) DO NOTHING`, userID, string(role))
		return err
	})
	if err != nil {
		return mapWriteErr(err)
	}
	return nil
}

// Revoke removes a role from the user.
func (r *RoleRepo) Revoke(ctx context.Context, userID string, role domainauth.Role) error {
	return pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			DELETE FROM user_roles WHERE user_id = $1 AND role = $2`, userID, string(role))
		return err
	})
}
