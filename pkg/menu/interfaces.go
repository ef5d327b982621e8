// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package menu

import (
	"context"

	"github.com/omnicore/restaurant-service/internal/types"
)

type ServiceInterface interface {
	CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error)
	GetCategory(ctx context.Context, tenantID, id string) (*types.Category, error)
	ListCategories(ctx context.Context, tenantID string) ([]*types.Category, error)
	UpdateCategory(ctx context.Context, c *types.Category) (*types.Category, error)
	DeleteCategory(ctx context.Context, tenantID, id string) error

	CreateItem(ctx context.Context, m *types.MenuItem) (*types.MenuItem, error)
	GetItem(ctx context.Context, tenantID, id string) (*types.MenuItem, error)
	ListItems(ctx context.Context, tenantID, categoryID string, page, size int64) ([]*types.MenuItem, error)
	UpdateItem(ctx context.Context, m *types.MenuItem) (*types.MenuItem, error)
	DeleteItem(ctx context.Context, tenantID, id string) error
}

type StorageInterface interface {
	CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error)
	GetCategory(ctx context.Context, tenantID, id string) (*types.Category, error)
	ListCategories(ctx context.Context, tenantID string) ([]*types.Category, error)
	UpdateCategory(ctx context.Context, c *types.Category) error
	DeleteCategory(ctx context.Context, tenantID, id string) error

	CreateMenuItem(ctx context.Context, m *types.MenuItem) (*types.MenuItem, error)
	GetMenuItem(ctx context.Context, tenantID, id string) (*types.MenuItem, error)
	ListMenuItems(ctx context.Context, tenantID, categoryID string, page, size int64) ([]*types.MenuItem, error)
	UpdateMenuItem(ctx context.Context, m *types.MenuItem) error
	DeleteMenuItem(ctx context.Context, tenantID, id string) error
}
