// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	// ErrTransient marks failures the caller may retry: timeouts and
	// unavailable connections, never logical errors.
	ErrTransient = errors.New("transient storage failure")
)

// PostgreSQL error codes
const (
	pgErrCodeUniqueViolation      = "23505"
	pgErrCodeForeignKeyViolation  = "23503"
	pgErrCodeInvalidTextRepresent = "22P02"
)

// isNoRows reports whether err is the empty-result sentinel. The pool is
// driven through database/sql, which surfaces sql.ErrNoRows; pgx.ErrNoRows
// unwraps to the same sentinel, so this check covers both query paths.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isInvalidTextRepresentation matches SQLSTATE 22P02, raised when a value
// cannot be cast to the column type, e.g. a non-UUID string bound against a
// uuid column.
func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeInvalidTextRepresent
	}
	return false
}

// IsDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeUniqueViolation
	}
	return false
}

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgErrCodeForeignKeyViolation
	}
	return false
}

// IsTimeout reports whether the error was caused by a storage lookup
// exceeding its deadline rather than by the query itself.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return pgconn.Timeout(err)
}

// classify maps a driver error onto the storage sentinel taxonomy, keeping
// the original error in the chain.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsTimeout(err):
		return errors.Join(ErrTransient, err)
	case IsDuplicateKeyError(err):
		return errors.Join(ErrDuplicateKey, err)
	case IsForeignKeyViolation(err):
		return errors.Join(ErrForeignKeyViolation, err)
	case isInvalidTextRepresentation(err):
		// A value that cannot be cast to its column type can never match
		// a row, so a malformed identifier reads as not found.
		return errors.Join(ErrNotFound, err)
	default:
		return err
	}
}
