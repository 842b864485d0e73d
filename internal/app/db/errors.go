package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the SQLSTATE Postgres reports when a write hits a unique index.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a duplicate-key error, such as a second
// account for an email that is already registered.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
