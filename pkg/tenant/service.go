// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/omnicore/restaurant-service/internal/authorization"
	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/storage"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/internal/types"
)

var (
	// ErrUnknownUser means the email does not belong to a registered user.
	ErrUnknownUser = errors.New("no user with that email")
	// ErrInvalidRole means the role is not one of the fixed membership roles.
	ErrInvalidRole = errors.New("invalid role")
	// ErrOwnerRequired means the change touches an owner membership and the
	// actor is not an owner.
	ErrOwnerRequired = errors.New("owner role required")
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

func (s *Service) ListMyTenants(ctx context.Context, userID string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListMyTenants")
	defer span.End()

	return s.storage.ListActiveTenantsByUserID(ctx, userID)
}

func (s *Service) GetTenant(ctx context.Context, tenantID string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.GetTenant")
	defer span.End()

	return s.storage.GetTenantByID(ctx, tenantID)
}

func (s *Service) UpdateTenant(ctx context.Context, tenant *types.Tenant, paths []string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.UpdateTenant")
	defer span.End()

	if err := s.storage.UpdateTenant(ctx, tenant, paths); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}

	updated, err := s.storage.GetTenantByID(ctx, tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get updated tenant: %w", err)
	}

	return updated, nil
}

func (s *Service) ListTenantUsers(ctx context.Context, tenantID string) ([]*types.TenantUser, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListTenantUsers")
	defer span.End()

	return s.storage.ListMembersByTenantID(ctx, tenantID)
}

func (s *Service) AddTenantUser(ctx context.Context, tenantID, email, role, actorRole string) (*types.TenantUser, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.AddTenantUser")
	defer span.End()

	if !authorization.ValidRole(role) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	if role == authorization.RoleOwner && actorRole != authorization.RoleOwner {
		return nil, ErrOwnerRequired
	}

	user, err := s.storage.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownUser, email)
		}
		return nil, err
	}

	if _, err := s.storage.AddMember(ctx, tenantID, user.ID, role); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return &types.TenantUser{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     role,
		Active:   true,
	}, nil
}

func (s *Service) UpdateTenantUserRole(ctx context.Context, tenantID, userID, role, actorRole string) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.UpdateTenantUserRole")
	defer span.End()

	if !authorization.ValidRole(role) {
		return fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	current, err := s.storage.GetActiveMembership(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	// Promoting to owner or demoting an owner is reserved for owners.
	touchesOwner := role == authorization.RoleOwner || current.Role == authorization.RoleOwner
	if touchesOwner && actorRole != authorization.RoleOwner {
		return ErrOwnerRequired
	}

	if current.Role == role {
		return nil
	}

	return s.storage.UpdateMemberRole(ctx, tenantID, userID, role)
}

func (s *Service) SetTenantUserStatus(ctx context.Context, tenantID, userID string, active bool) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.SetTenantUserStatus")
	defer span.End()

	return s.storage.SetMemberStatus(ctx, tenantID, userID, active)
}

// CreateTenant provisions a tenant and its owner membership. Platform
// operator operation: the owner must already hold a user account.
func (s *Service) CreateTenant(ctx context.Context, name, slug, ownerEmail string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.CreateTenant")
	defer span.End()

	owner, err := s.storage.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(ownerEmail)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownUser, ownerEmail)
		}
		return nil, err
	}

	created, err := s.storage.CreateTenant(ctx, &types.Tenant{
		Name:    name,
		Slug:    slug,
		OwnerID: owner.ID,
		Active:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	if _, err := s.storage.AddMember(ctx, created.ID, owner.ID, authorization.RoleOwner); err != nil {
		return nil, fmt.Errorf("failed to add owner membership: %w", err)
	}

	s.logger.Infof("provisioned tenant %s (%s) for owner %s", created.ID, created.Slug, owner.ID)

	return created, nil
}

func (s *Service) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListTenants")
	defer span.End()

	return s.storage.ListTenants(ctx)
}

func (s *Service) SetTenantStatus(ctx context.Context, tenantID string, active bool) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.SetTenantStatus")
	defer span.End()

	return s.storage.SetTenantStatus(ctx, tenantID, active)
}

var _ ServiceInterface = (*Service)(nil)
