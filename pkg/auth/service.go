// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/storage"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/internal/types"
	"github.com/omnicore/restaurant-service/pkg/authentication"
)

// ErrInvalidLogin covers bad email, bad password and suspended accounts.
// The three cases are deliberately indistinguishable to the caller.
var ErrInvalidLogin = errors.New("invalid email or password")

// ErrEmailTaken is returned on registration with an already used email.
var ErrEmailTaken = errors.New("email already registered")

type Service struct {
	storage  StorageInterface
	issuer   authentication.TokenIssuerInterface
	verifier authentication.TokenVerifierInterface
	denylist authentication.DenylistInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	issuer authentication.TokenIssuerInterface,
	verifier authentication.TokenVerifierInterface,
	denylist authentication.DenylistInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		issuer:   issuer,
		verifier: verifier,
		denylist: denylist,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (s *Service) Register(ctx context.Context, email, password, fullName string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.Register")
	defer span.End()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.storage.CreateUser(ctx, &types.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		FullName:     fullName,
		Active:       true,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrEmailTaken, email)
		}
		return nil, err
	}

	tokens, err := s.issuer.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	s.logger.Security().AuthnSuccess(user.ID)

	return &Session{User: user, Tokens: tokens, Tenants: []*types.Tenant{}}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.Login")
	defer span.End()

	user, err := s.storage.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Burn a comparison so the response time does not reveal
			// whether the email exists.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.logger.Security().AuthnFailure("unknown email")
			return nil, ErrInvalidLogin
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Security().AuthnFailure("password mismatch")
		return nil, ErrInvalidLogin
	}

	if !user.Active {
		s.logger.Security().AuthnFailure("suspended account")
		return nil, ErrInvalidLogin
	}

	tokens, err := s.issuer.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	tenants, err := s.storage.ListActiveTenantsByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Security().AuthnSuccess(user.ID)

	return &Session{User: user, Tokens: tokens, Tenants: tenants}, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh pair is issued, so a stolen refresh token is single-use.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*authentication.TokenPair, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.Refresh")
	defer span.End()

	claims, err := s.verifier.VerifyToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != authentication.KindRefresh {
		return nil, fmt.Errorf("%w: not a refresh token", authentication.ErrInvalidCredential)
	}

	user, err := s.storage.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: subject no longer exists", authentication.ErrInvalidCredential)
		}
		return nil, err
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: subject is suspended", authentication.ErrInvalidCredential)
	}

	if err := s.denylist.RevokeToken(ctx, claims.TokenID, claims.UserID, claims.ExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	tokens, err := s.issuer.IssuePair(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return tokens, nil
}

// Logout revokes the presented access token and, when supplied, the refresh
// token of the same session. Revocation is effective on the very next
// request.
func (s *Service) Logout(ctx context.Context, access *authentication.Claims, refreshToken string) error {
	ctx, span := s.tracer.Start(ctx, "auth.Service.Logout")
	defer span.End()

	if err := s.denylist.RevokeToken(ctx, access.TokenID, access.UserID, access.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if refreshToken != "" {
		claims, err := s.verifier.VerifyToken(ctx, refreshToken)
		// An already invalid refresh token needs no revocation.
		if err == nil && claims.UserID == access.UserID {
			if err := s.denylist.RevokeToken(ctx, claims.TokenID, claims.UserID, claims.ExpiresAt); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
	}

	s.logger.Security().TokenRevoked(access.UserID)

	return nil
}

func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	ctx, span := s.tracer.Start(ctx, "auth.Service.Profile")
	defer span.End()

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.storage.ListActiveMembershipsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	tenants, err := s.storage.ListActiveTenantsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: user, Memberships: memberships, Tenants: tenants}, nil
}

// dummyHash is a bcrypt hash of an unguessable value, used to equalize
// login timing for unknown emails.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("login-timing-equalizer"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

var _ ServiceInterface = (*Service)(nil)
