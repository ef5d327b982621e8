// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"
	"errors"
	"fmt"

	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/storage"
	"github.com/omnicore/restaurant-service/internal/tracing"
)

// Resolver turns a token subject into a request context: the user record,
// its active memberships and, when determinable, the tenant the request
// operates on.
type Resolver struct {
	store StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewResolver(store StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Resolver {
	return &Resolver{
		store:   store,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Resolve loads the principal and picks the request tenant. The selector is
// the value of the tenant header, a tenant ID or slug; an empty selector
// falls back to auto-selection when the principal belongs to exactly one
// tenant. A request without a resolvable tenant is still valid, the access
// gate rejects it later if the route needs one.
func (r *Resolver) Resolve(ctx context.Context, userID, selector string) (*RequestContext, error) {
	ctx, span := r.tracer.Start(ctx, "tenancy.Resolver.Resolve")
	defer span.End()

	user, err := r.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: user %s", ErrUnknownPrincipal, userID)
		}
		return nil, err
	}
	if !user.Active {
		return nil, fmt.Errorf("%w: user %s is suspended", ErrUnknownPrincipal, userID)
	}

	memberships, err := r.store.ListActiveMembershipsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rc := &RequestContext{
		User:        user,
		Memberships: memberships,
	}

	if selector != "" {
		tenant, err := r.store.GetActiveTenantBySelector(ctx, selector)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%w: selector %q", ErrTenantAccessDenied, selector)
			}
			return nil, err
		}

		for _, m := range memberships {
			if m.TenantID == tenant.ID {
				rc.Tenant = tenant
				rc.Role = m.Role
				return rc, nil
			}
		}
		return nil, fmt.Errorf("%w: no membership in tenant %s", ErrTenantAccessDenied, tenant.ID)
	}

	// No selector: unambiguous only when the principal belongs to exactly
	// one tenant.
	if len(memberships) == 1 {
		tenant, err := r.store.GetActiveTenantByID(ctx, memberships[0].TenantID)
		if err != nil {
			// A disabled tenant cannot be auto-selected; the request
			// stays tenantless and the gate rejects it where a tenant
			// is required.
			if errors.Is(err, storage.ErrNotFound) {
				return rc, nil
			}
			return nil, err
		}
		rc.Tenant = tenant
		rc.Role = memberships[0].Role
	}

	return rc, nil
}

var _ ResolverInterface = (*Resolver)(nil)
