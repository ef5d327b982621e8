// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tables

import (
	"context"

	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
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

func (s *Service) CreateTable(ctx context.Context, t *types.Table) (*types.Table, error) {
	ctx, span := s.tracer.Start(ctx, "tables.Service.CreateTable")
	defer span.End()

	return s.storage.CreateTable(ctx, t)
}

func (s *Service) GetTable(ctx context.Context, tenantID, id string) (*types.Table, error) {
	ctx, span := s.tracer.Start(ctx, "tables.Service.GetTable")
	defer span.End()

	return s.storage.GetTable(ctx, tenantID, id)
}

func (s *Service) ListTables(ctx context.Context, tenantID string) ([]*types.Table, error) {
	ctx, span := s.tracer.Start(ctx, "tables.Service.ListTables")
	defer span.End()

	return s.storage.ListTables(ctx, tenantID)
}

func (s *Service) UpdateTable(ctx context.Context, t *types.Table) (*types.Table, error) {
	ctx, span := s.tracer.Start(ctx, "tables.Service.UpdateTable")
	defer span.End()

	if err := s.storage.UpdateTable(ctx, t); err != nil {
		return nil, err
	}
	return s.storage.GetTable(ctx, t.TenantID, t.ID)
}

func (s *Service) DeleteTable(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "tables.Service.DeleteTable")
	defer span.End()

	return s.storage.DeleteTable(ctx, tenantID, id)
}

var _ ServiceInterface = (*Service)(nil)
