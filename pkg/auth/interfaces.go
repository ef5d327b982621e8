// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"context"

	"github.com/omnicore/restaurant-service/internal/types"
	"github.com/omnicore/restaurant-service/pkg/authentication"
)

type ServiceInterface interface {
	Register(ctx context.Context, email, password, fullName string) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*authentication.TokenPair, error)
	Logout(ctx context.Context, access *authentication.Claims, refreshToken string) error
	Profile(ctx context.Context, userID string) (*Profile, error)
}

type StorageInterface interface {
	CreateUser(ctx context.Context, u *types.User) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	ListActiveMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
	ListActiveTenantsByUserID(ctx context.Context, userID string) ([]*types.Tenant, error)
}
