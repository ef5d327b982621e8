// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"

	"github.com/omnicore/restaurant-service/internal/authorization"
	"github.com/omnicore/restaurant-service/internal/types"
)

type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	ListActiveMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error)
	GetActiveTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	GetActiveTenantBySelector(ctx context.Context, selector string) (*types.Tenant, error)
}

type GateInterface interface {
	Authorize(ctx context.Context, principalID, role string, hasTenant bool, tier authorization.Tier) error
}

type ResolverInterface interface {
	// Resolve maps a validated token subject plus an optional tenant
	// selector to a full request context.
	Resolve(ctx context.Context, userID, selector string) (*RequestContext, error)
}
