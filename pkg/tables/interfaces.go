// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tables

import (
	"context"

	"github.com/omnicore/restaurant-service/internal/types"
)

type ServiceInterface interface {
	CreateTable(ctx context.Context, t *types.Table) (*types.Table, error)
	GetTable(ctx context.Context, tenantID, id string) (*types.Table, error)
	ListTables(ctx context.Context, tenantID string) ([]*types.Table, error)
	UpdateTable(ctx context.Context, t *types.Table) (*types.Table, error)
	DeleteTable(ctx context.Context, tenantID, id string) error
}

type StorageInterface interface {
	CreateTable(ctx context.Context, t *types.Table) (*types.Table, error)
	GetTable(ctx context.Context, tenantID, id string) (*types.Table, error)
	ListTables(ctx context.Context, tenantID string) ([]*types.Table, error)
	UpdateTable(ctx context.Context, t *types.Table) error
	DeleteTable(ctx context.Context, tenantID, id string) error
}
