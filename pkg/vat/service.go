// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package vat

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

func (s *Service) CreateTax(ctx context.Context, v *types.VatTax) (*types.VatTax, error) {
	ctx, span := s.tracer.Start(ctx, "vat.Service.CreateTax")
	defer span.End()

	return s.storage.CreateVatTax(ctx, v)
}

func (s *Service) GetTax(ctx context.Context, tenantID, id string) (*types.VatTax, error) {
	ctx, span := s.tracer.Start(ctx, "vat.Service.GetTax")
	defer span.End()

	return s.storage.GetVatTax(ctx, tenantID, id)
}

func (s *Service) ListTaxes(ctx context.Context, tenantID string) ([]*types.VatTax, error) {
	ctx, span := s.tracer.Start(ctx, "vat.Service.ListTaxes")
	defer span.End()

	return s.storage.ListVatTaxes(ctx, tenantID)
}

func (s *Service) UpdateTax(ctx context.Context, v *types.VatTax) (*types.VatTax, error) {
	ctx, span := s.tracer.Start(ctx, "vat.Service.UpdateTax")
	defer span.End()

	if err := s.storage.UpdateVatTax(ctx, v); err != nil {
		return nil, err
	}
	return s.storage.GetVatTax(ctx, v.TenantID, v.ID)
}

func (s *Service) DeleteTax(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "vat.Service.DeleteTax")
	defer span.End()

	return s.storage.DeleteVatTax(ctx, tenantID, id)
}

var _ ServiceInterface = (*Service)(nil)
