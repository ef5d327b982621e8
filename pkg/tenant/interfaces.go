// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/omnicore/restaurant-service/internal/types"
)

type ServiceInterface interface {
	ListMyTenants(ctx context.Context, userID string) ([]*types.Tenant, error)
	GetTenant(ctx context.Context, tenantID string) (*types.Tenant, error)
	UpdateTenant(ctx context.Context, tenant *types.Tenant, paths []string) (*types.Tenant, error)

	ListTenantUsers(ctx context.Context, tenantID string) ([]*types.TenantUser, error)
	AddTenantUser(ctx context.Context, tenantID, email, role, actorRole string) (*types.TenantUser, error)
	UpdateTenantUserRole(ctx context.Context, tenantID, userID, role, actorRole string) error
	SetTenantUserStatus(ctx context.Context, tenantID, userID string, active bool) error

	CreateTenant(ctx context.Context, name, slug, ownerEmail string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	SetTenantStatus(ctx context.Context, tenantID string, active bool) error
}

type StorageInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	ListActiveTenantsByUserID(ctx context.Context, userID string) ([]*types.Tenant, error)
	UpdateTenant(ctx context.Context, tenant *types.Tenant, paths []string) error
	SetTenantStatus(ctx context.Context, id string, active bool) error

	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetActiveMembership(ctx context.Context, tenantID, userID string) (*types.Membership, error)
	AddMember(ctx context.Context, tenantID, userID, role string) (string, error)
	UpdateMemberRole(ctx context.Context, tenantID, userID, role string) error
	SetMemberStatus(ctx context.Context, tenantID, userID string, active bool) error
	ListMembersByTenantID(ctx context.Context, tenantID string) ([]*types.TenantUser, error)
}
