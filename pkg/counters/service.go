// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package counters

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

func (s *Service) CreateCounter(ctx context.Context, c *types.Counter) (*types.Counter, error) {
	ctx, span := s.tracer.Start(ctx, "counters.Service.CreateCounter")
	defer span.End()

	return s.storage.CreateCounter(ctx, c)
}

func (s *Service) GetCounter(ctx context.Context, tenantID, id string) (*types.Counter, error) {
	ctx, span := s.tracer.Start(ctx, "counters.Service.GetCounter")
	defer span.End()

	return s.storage.GetCounter(ctx, tenantID, id)
}

func (s *Service) ListCounters(ctx context.Context, tenantID string) ([]*types.Counter, error) {
	ctx, span := s.tracer.Start(ctx, "counters.Service.ListCounters")
	defer span.End()

	list, err := s.storage.ListCounters(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	for _, c := range list {
		if c.ItemIDs != nil {
			continue
		}
		ids, err := s.storage.ListCounterItemIDs(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.ItemIDs = ids
	}

	return list, nil
}

func (s *Service) UpdateCounter(ctx context.Context, c *types.Counter) (*types.Counter, error) {
	ctx, span := s.tracer.Start(ctx, "counters.Service.UpdateCounter")
	defer span.End()

	if err := s.storage.UpdateCounter(ctx, c); err != nil {
		return nil, err
	}
	return s.storage.GetCounter(ctx, c.TenantID, c.ID)
}

func (s *Service) DeleteCounter(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "counters.Service.DeleteCounter")
	defer span.End()

	return s.storage.DeleteCounter(ctx, tenantID, id)
}

// SetItems replaces the menu item assignment of a counter. Every item must
// belong to the same tenant as the counter; items from other tenants are
// rejected before anything is written.
func (s *Service) SetItems(ctx context.Context, tenantID, counterID string, itemIDs []string) (*types.Counter, error) {
	ctx, span := s.tracer.Start(ctx, "counters.Service.SetItems")
	defer span.End()

	if _, err := s.storage.GetCounter(ctx, tenantID, counterID); err != nil {
		return nil, err
	}

	for _, itemID := range itemIDs {
		if _, err := s.storage.GetMenuItem(ctx, tenantID, itemID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("menu item %q: %w", itemID, storage.ErrForeignKeyViolation)
			}
			return nil, err
		}
	}

	if err := s.storage.SetCounterItems(ctx, counterID, itemIDs); err != nil {
		return nil, err
	}

	return s.storage.GetCounter(ctx, tenantID, counterID)
}

var _ ServiceInterface = (*Service)(nil)
