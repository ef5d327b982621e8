// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package staff

import (
	"context"

	"github.com/omnicore/restaurant-service/internal/types"
)

type ServiceInterface interface {
	CreateProfile(ctx context.Context, p *types.StaffProfile) (*types.StaffProfile, error)
	GetProfile(ctx context.Context, tenantID, id string) (*types.StaffProfile, error)
	ListProfiles(ctx context.Context, tenantID string) ([]*types.StaffProfile, error)
	UpdateProfile(ctx context.Context, p *types.StaffProfile) (*types.StaffProfile, error)
	DeleteProfile(ctx context.Context, tenantID, id string) error
}

type StorageInterface interface {
	CreateStaffProfile(ctx context.Context, p *types.StaffProfile) (*types.StaffProfile, error)
	GetStaffProfile(ctx context.Context, tenantID, id string) (*types.StaffProfile, error)
	ListStaffProfiles(ctx context.Context, tenantID string) ([]*types.StaffProfile, error)
	UpdateStaffProfile(ctx context.Context, p *types.StaffProfile) error
	DeleteStaffProfile(ctx context.Context, tenantID, id string) error
}
