package data

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bkndhn/bazaar-api/internal/data/pgxutil"
)

// UserRecord is a credential-store row. The password hash never leaves the
// data and password-adapter layers.
type UserRecord struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	DisplayName  string    `db:"display_name"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// UserRepo provides database operations for user credentials.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userByEmailQuery = `
	SELECT id, email, display_name, password_hash, created_at
	FROM users
	WHERE email = $1`

// GetByEmail retrieves a user row by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*UserRecord, error) {
	var u UserRecord
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userByEmailQuery, NormalizeEmail(email))
		if err != nil {
			return err
		}
		defer rows.Close()
		u, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[UserRecord])
		return err
	})
	if err != nil {
		return nil, mapReadErr(err, "user not found")
	}
	return &u, nil
}

// Create inserts a user row and returns it with generated fields populated.
func (r *UserRepo) Create(ctx context.Context, u *UserRecord) (*UserRecord, error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	var out UserRecord
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (id, email, display_name, password_hash)
			VALUES ($1, $2, $3, $4)
			RETURNING id, email, display_name, password_hash, created_at`,
			u.ID, NormalizeEmail(u.Email), strings.TrimSpace(u.DisplayName), u.PasswordHash)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[UserRecord])
		return err
	}); err != nil {
		return nil, mapWriteErr(err)
	}
	return &out, nil
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
