// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"

	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/tracing"
)

var (
	// ErrForbidden means the principal is scoped to a tenant but its role
	// does not satisfy the required tier.
	ErrForbidden = errors.New("forbidden")
	// ErrTenantRequired means the operation needs a tenant and none was
	// resolved for the request.
	ErrTenantRequired = errors.New("tenant required")
)

// Gate evaluates whether a resolved principal/tenant pair satisfies a
// required role tier. It never mutates state and never retries: a denial is
// terminal for the request.
type Gate struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewGate(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Gate {
	return &Gate{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Authorize checks the principal's role in the resolved tenant against the
// tier. An unresolved tenant is an automatic deny for any tenant-scoped
// tier, reported as ErrTenantRequired so the boundary can distinguish it
// from a role failure.
func (g *Gate) Authorize(ctx context.Context, principalID, role string, hasTenant bool, tier Tier) error {
	_, span := g.tracer.Start(ctx, "authorization.Gate.Authorize")
	defer span.End()

	if !hasTenant {
		return ErrTenantRequired
	}

	if !RoleInTier(role, tier) {
		g.logger.Security().AuthzFailure(principalID, string(tier))
		return ErrForbidden
	}

	return nil
}
