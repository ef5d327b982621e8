// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/tracing"
)

const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

// Claims is the validated content of a token. UserID is the subject,
// TokenID the denylist key.
type Claims struct {
	UserID    string
	TokenID   string
	Kind      string
	ExpiresAt time.Time
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type tokenClaims struct {
	Kind string `json:"typ"`
	jwt.RegisteredClaims
}

// TokenIssuer mints HS256 tokens signed with the service secret. Every
// token carries a unique jti so it can be revoked individually.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewTokenIssuer(secret, issuer string, accessTTL, refreshTTL time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

func (i *TokenIssuer) IssuePair(ctx context.Context, userID string) (*TokenPair, error) {
	_, span := i.tracer.Start(ctx, "authentication.TokenIssuer.IssuePair")
	defer span.End()

	access, err := i.sign(userID, KindAccess, i.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := i.sign(userID, KindRefresh, i.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(i.accessTTL.Seconds()),
	}, nil
}

func (i *TokenIssuer) sign(userID, kind string, ttl time.Duration) (string, error) {
	jti, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate token id: %w", err)
	}

	now := time.Now()
	claims := tokenClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			ID:        jti.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	return signed, nil
}

var _ TokenIssuerInterface = (*TokenIssuer)(nil)
