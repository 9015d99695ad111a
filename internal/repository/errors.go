package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error codes the repositories care about. The constraints are the
// authoritative guard: service-level pre-checks are only a friendly fast path,
// and a race loser must still be translated to the same domain error.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a FK violation, i.e. an attempt
// to delete a row that products still reference.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
