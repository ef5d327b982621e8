// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsNoRows(t *testing.T) {
	// The pool runs through database/sql, so row scans surface
	// sql.ErrNoRows, not pgx.ErrNoRows. Both sentinels must be detected
	// or every not-found branch in this package goes dead.
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"database/sql sentinel", sql.ErrNoRows, true},
		{"pgx sentinel", pgx.ErrNoRows, true},
		{"wrapped sql sentinel", errors.Join(errors.New("scan"), sql.ErrNoRows), true},
		{"other error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNoRows(tt.err); got != tt.want {
				t.Errorf("isNoRows(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pgconn.PgError{Code: pgErrCodeUniqueViolation}, ErrDuplicateKey},
		{"foreign key violation", &pgconn.PgError{Code: pgErrCodeForeignKeyViolation}, ErrForeignKeyViolation},
		{"malformed uuid bind", &pgconn.PgError{Code: pgErrCodeInvalidTextRepresent}, ErrNotFound},
		{"deadline", context.DeadlineExceeded, ErrTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classify() = %v, want %v in chain", got, tt.want)
			}
		})
	}
}
