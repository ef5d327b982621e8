// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// RevokeToken adds a token ID to the denylist. Revocation is effective for
// the very next validation: there is no cache in front of this table.
func (s *Storage) RevokeToken(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.RevokeToken")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Insert("revoked_tokens").
		Columns("jti", "user_id", "expires_at").
		Values(jti, userID, expiresAt).
		Suffix("ON CONFLICT (jti) DO NOTHING").
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", classify(err))
	}

	return nil
}

func (s *Storage) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.IsTokenRevoked")
	defer span.End()

	var found string
	err := s.db.Statement(ctx).
		Select("jti").
		From("revoked_tokens").
		Where(sq.Eq{"jti": jti}).
		QueryRowContext(ctx).
		Scan(&found)

	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check token revocation: %w", classify(err))
	}

	return true, nil
}

// PruneRevokedTokens drops denylist entries whose tokens have expired on
// their own. Safe to run at any time.
func (s *Storage) PruneRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.PruneRevokedTokens")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("revoked_tokens").
		Where(sq.Lt{"expires_at": now}).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to prune revoked tokens: %w", classify(err))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rows, nil
}
