// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/storage"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/internal/types"
)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "menu.Service.CreateCategory")
	defer span.End()

	return s.storage.CreateCategory(ctx, c)
}

func (s *Service) GetCategory(ctx context.Context, tenantID, id string) (*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "menu.Service.GetCategory")
	defer span.End()

	return s.storage.GetCategory(ctx, tenantID, id)
}

func (s *Service) ListCategories(ctx context.Context, tenantID string) ([]*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "menu.Service.ListCategories")
	defer span.End()

	return s.storage.ListCategories(ctx, tenantID)
}

func (s *Service) UpdateCategory(ctx context.Context, c *types.Category) (*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "menu.Service.UpdateCategory")
	defer span.End()

	if err := s.storage.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return s.storage.GetCategory(ctx, c.TenantID, c.ID)
}

func (s *Service) DeleteCategory(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "menu.Service.DeleteCategory")
	defer span.End()

	return s.storage.DeleteCategory(ctx, tenantID, id)
}

func (s *Service) CreateItem(ctx context.Context, m *types.MenuItem) (*types.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "menu.Service.CreateItem")
	defer span.End()

	if err := s.checkCategory(ctx, m); err != nil {
		return nil, err
	}

	return s.storage.CreateMenuItem(ctx, m)
}

func (s *Service) GetItem(ctx context.Context, tenantID, id string) (*types.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "menu.Service.GetItem")
	defer span.End()

	return s.storage.GetMenuItem(ctx, tenantID, id)
}

func (s *Service) ListItems(ctx context.Context, tenantID, categoryID string, page, size int64) ([]*types.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "menu.Service.ListItems")
	defer span.End()

	return s.storage.ListMenuItems(ctx, tenantID, categoryID, page, size)
}

func (s *Service) UpdateItem(ctx context.Context, m *types.MenuItem) (*types.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "menu.Service.UpdateItem")
	defer span.End()

	if err := s.checkCategory(ctx, m); err != nil {
		return nil, err
	}

	if err := s.storage.UpdateMenuItem(ctx, m); err != nil {
		return nil, err
	}
	return s.storage.GetMenuItem(ctx, m.TenantID, m.ID)
}

func (s *Service) DeleteItem(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "menu.Service.DeleteItem")
	defer span.End()

	return s.storage.DeleteMenuItem(ctx, tenantID, id)
}

// checkCategory rejects items referencing a category of another tenant (or
// none at all) before the insert hits the foreign key.
func (s *Service) checkCategory(ctx context.Context, m *types.MenuItem) error {
	if m.CategoryID == nil {
		return nil
	}
	if _, err := s.storage.GetCategory(ctx, m.TenantID, *m.CategoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("category %s: %w", *m.CategoryID, storage.ErrForeignKeyViolation)
		}
		return err
	}
	return nil
}

var _ ServiceInterface = (*Service)(nil)
