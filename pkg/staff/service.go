// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package staff

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

func (s *Service) CreateProfile(ctx context.Context, p *types.StaffProfile) (*types.StaffProfile, error) {
	ctx, span := s.tracer.Start(ctx, "staff.Service.CreateProfile")
	defer span.End()

	return s.storage.CreateStaffProfile(ctx, p)
}

func (s *Service) GetProfile(ctx context.Context, tenantID, id string) (*types.StaffProfile, error) {
	ctx, span := s.tracer.Start(ctx, "staff.Service.GetProfile")
	defer span.End()

	return s.storage.GetStaffProfile(ctx, tenantID, id)
}

func (s *Service) ListProfiles(ctx context.Context, tenantID string) ([]*types.StaffProfile, error) {
	ctx, span := s.tracer.Start(ctx, "staff.Service.ListProfiles")
	defer span.End()

	return s.storage.ListStaffProfiles(ctx, tenantID)
}

func (s *Service) UpdateProfile(ctx context.Context, p *types.StaffProfile) (*types.StaffProfile, error) {
	ctx, span := s.tracer.Start(ctx, "staff.Service.UpdateProfile")
	defer span.End()

	if err := s.storage.UpdateStaffProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.storage.GetStaffProfile(ctx, p.TenantID, p.ID)
}

func (s *Service) DeleteProfile(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "staff.Service.DeleteProfile")
	defer span.End()

	return s.storage.DeleteStaffProfile(ctx, tenantID, id)
}

var _ ServiceInterface = (*Service)(nil)
