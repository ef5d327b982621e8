// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"time"
)

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw JWT string: signature, issuer, expiry and
	// the revocation denylist. Returns the token claims when valid.
	VerifyToken(ctx context.Context, rawToken string) (*Claims, error)
}

type TokenIssuerInterface interface {
	// IssuePair mints a fresh access/refresh token pair for the subject.
	IssuePair(ctx context.Context, userID string) (*TokenPair, error)
}

type DenylistInterface interface {
	RevokeToken(ctx context.Context, jti, userID string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}
