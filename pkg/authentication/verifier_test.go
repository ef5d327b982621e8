// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/storage"
	"github.com/omnicore/restaurant-service/internal/tracing"
)

const (
	testSecret = "test-secret"
	testIssuer = "restaurant-service"
)

type fakeDenylist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeDenylist) RevokeToken(_ context.Context, jti, _ string, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	if f.revoked == nil {
		f.revoked = make(map[string]bool)
	}
	f.revoked[jti] = true
	return nil
}

func (f *fakeDenylist) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[jti], nil
}

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer(testSecret, testIssuer, 15*time.Minute, 7*24*time.Hour,
		tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func newTestVerifier(denylist DenylistInterface) *JWTVerifier {
	return NewJWTVerifier(testSecret, testIssuer, denylist,
		tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestVerifyTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer()
	verifier := newTestVerifier(&fakeDenylist{})

	pair, err := issuer.IssuePair(ctx, "user-1")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}
	if pair.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", pair.TokenType)
	}
	if pair.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn = %d, want %d", pair.ExpiresIn, int64((15*time.Minute).Seconds()))
	}

	claims, err := verifier.VerifyToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyToken(access) error = %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
	if claims.Kind != KindAccess {
		t.Errorf("Kind = %q, want %q", claims.Kind, KindAccess)
	}
	if claims.TokenID == "" {
		t.Error("TokenID is empty")
	}

	refreshClaims, err := verifier.VerifyToken(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("VerifyToken(refresh) error = %v", err)
	}
	if refreshClaims.Kind != KindRefresh {
		t.Errorf("Kind = %q, want %q", refreshClaims.Kind, KindRefresh)
	}
	if refreshClaims.TokenID == claims.TokenID {
		t.Error("access and refresh tokens share a token id")
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	ctx := context.Background()
	verifier := newTestVerifier(&fakeDenylist{})

	pair, err := newTestIssuer().IssuePair(ctx, "user-1")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	otherIssuer := NewTokenIssuer("other-secret", testIssuer, time.Minute, time.Hour,
		tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	otherPair, err := otherIssuer.IssuePair(ctx, "user-1")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	wrongIssuer := NewTokenIssuer(testSecret, "someone-else", time.Minute, time.Hour,
		tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	wrongIssuerPair, err := wrongIssuer.IssuePair(ctx, "user-1")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong signature", otherPair.AccessToken},
		{"wrong issuer", wrongIssuerPair.AccessToken},
		{"truncated", pair.AccessToken[:len(pair.AccessToken)-10]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.VerifyToken(ctx, tt.token)
			if !errors.Is(err, ErrInvalidCredential) {
				t.Errorf("VerifyToken() error = %v, want ErrInvalidCredential", err)
			}
		})
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	ctx := context.Background()
	issuer := NewTokenIssuer(testSecret, testIssuer, -time.Minute, -time.Minute,
		tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	verifier := newTestVerifier(&fakeDenylist{})

	pair, err := issuer.IssuePair(ctx, "user-1")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	_, err = verifier.VerifyToken(ctx, pair.AccessToken)
	if !errors.Is(err, ErrExpiredCredential) {
		t.Errorf("VerifyToken() error = %v, want ErrExpiredCredential", err)
	}
}

func TestVerifyTokenExpiredBadSignature(t *testing.T) {
	ctx := context.Background()
	verifier := newTestVerifier(&fakeDenylist{})

	// Signed with the wrong secret and already expired. Expiry wins the
	// classification even though the parser stops at the signature.
	otherIssuer := NewTokenIssuer("other-secret", testIssuer, -time.Minute, -time.Minute,
		tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
	pair, err := otherIssuer.IssuePair(ctx, "user-1")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	_, err = verifier.VerifyToken(ctx, pair.AccessToken)
	if !errors.Is(err, ErrExpiredCredential) {
		t.Errorf("VerifyToken() error = %v, want ErrExpiredCredential", err)
	}
}

func TestVerifyTokenRevoked(t *testing.T) {
	ctx := context.Background()
	denylist := &fakeDenylist{}
	verifier := newTestVerifier(denylist)

	pair, err := newTestIssuer().IssuePair(ctx, "user-1")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	claims, err := verifier.VerifyToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("VerifyToken() before revocation error = %v", err)
	}

	if err := denylist.RevokeToken(ctx, claims.TokenID, claims.UserID, claims.ExpiresAt); err != nil {
		t.Fatalf("RevokeToken() error = %v", err)
	}

	_, err = verifier.VerifyToken(ctx, pair.AccessToken)
	if !errors.Is(err, ErrRevokedCredential) {
		t.Errorf("VerifyToken() after revocation error = %v, want ErrRevokedCredential", err)
	}
}

func TestVerifyTokenDenylistUnavailable(t *testing.T) {
	ctx := context.Background()
	denylist := &fakeDenylist{err: storage.ErrTransient}
	verifier := newTestVerifier(denylist)

	pair, err := newTestIssuer().IssuePair(ctx, "user-1")
	if err != nil {
		t.Fatalf("IssuePair() error = %v", err)
	}

	_, err = verifier.VerifyToken(ctx, pair.AccessToken)
	if err == nil {
		t.Fatal("VerifyToken() error = nil, want transient error")
	}
	if !errors.Is(err, storage.ErrTransient) {
		t.Errorf("VerifyToken() error = %v, want wrapped ErrTransient", err)
	}
	if errors.Is(err, ErrInvalidCredential) || errors.Is(err, ErrRevokedCredential) {
		t.Errorf("transient failure misreported as credential error: %v", err)
	}
}

func TestVerifyTokenRejectsUnsignedAlg(t *testing.T) {
	ctx := context.Background()
	verifier := newTestVerifier(&fakeDenylist{})

	claims := tokenClaims{
		Kind: KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   "user-1",
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build none-alg token: %v", err)
	}

	_, err = verifier.VerifyToken(ctx, raw)
	if !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidCredential", err)
	}
}
