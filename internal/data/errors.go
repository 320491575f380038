package data

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
)

// mapReadErr converts pgx read errors into the application taxonomy.
func mapReadErr(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFound(notFoundMsg)
	}
	return err
}

// mapWriteErr converts constraint violations into the application taxonomy.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperrors.Wrap(err, apperrors.ErrCodeConflict, "already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperrors.Wrap(err, apperrors.ErrCodeValidation, "referenced row does not exist")
		}
	}
	return err
}
