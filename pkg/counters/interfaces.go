// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package counters

import (
	"context"

	"github.com/omnicore/restaurant-service/internal/types"
)

type ServiceInterface interface {
	CreateCounter(ctx context.Context, c *types.Counter) (*types.Counter, error)
	GetCounter(ctx context.Context, tenantID, id string) (*types.Counter, error)
	ListCounters(ctx context.Context, tenantID string) ([]*types.Counter, error)
	UpdateCounter(ctx context.Context, c *types.Counter) (*types.Counter, error)
	DeleteCounter(ctx context.Context, tenantID, id string) error
	SetItems(ctx context.Context, tenantID, counterID string, itemIDs []string) (*types.Counter, error)
}

type StorageInterface interface {
	CreateCounter(ctx context.Context, c *types.Counter) (*types.Counter, error)
	GetCounter(ctx context.Context, tenantID, id string) (*types.Counter, error)
	ListCounters(ctx context.Context, tenantID string) ([]*types.Counter, error)
	UpdateCounter(ctx context.Context, c *types.Counter) error
	DeleteCounter(ctx context.Context, tenantID, id string) error
	ListCounterItemIDs(ctx context.Context, counterID string) ([]string, error)
	SetCounterItems(ctx context.Context, counterID string, itemIDs []string) error
	GetMenuItem(ctx context.Context, tenantID, id string) (*types.MenuItem, error)
}
