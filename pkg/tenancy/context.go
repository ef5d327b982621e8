// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"

	"github.com/omnicore/restaurant-service/internal/authorization"
	"github.com/omnicore/restaurant-service/internal/types"
)

// RequestContext is the resolved identity of a request. It is built once by
// the resolver middleware and treated as read-only afterwards.
type RequestContext struct {
	User        *types.User
	Memberships []*types.Membership
	// Tenant and Role are set only when a tenant was resolved for the
	// request, either explicitly via the selector header or implicitly
	// when the principal belongs to exactly one tenant.
	Tenant *types.Tenant
	Role   string
}

func (r *RequestContext) IsAuthenticated() bool {
	return r != nil && r.User != nil
}

func (r *RequestContext) HasTenant() bool {
	return r != nil && r.Tenant != nil
}

// RoleAtLeast reports whether the resolved role satisfies the tier. False
// when no tenant is resolved.
func (r *RequestContext) RoleAtLeast(tier authorization.Tier) bool {
	if !r.HasTenant() {
		return false
	}
	return authorization.RoleInTier(r.Role, tier)
}

type contextKey struct{}

var requestContextKey = contextKey{}

func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// GetRequestContext retrieves the resolved request context.
// Returns nil and false when resolution has not run for this request.
func GetRequestContext(ctx context.Context) (*RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey).(*RequestContext)
	return rc, ok
}
