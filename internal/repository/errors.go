// Package repository provides database access for domain entities.
package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for constraint outcomes callers are expected to branch on.
var (
	// ErrDuplicateCategory is returned when a (user, name, kind) category
	// already exists. Duplicate registration is rejected, not overwritten.
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrInvalidTransaction is returned when a transaction fails boundary
	// validation (non-positive amount or unknown kind).
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// uniqueViolationCode is the PostgreSQL error code for unique constraint violations.
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
