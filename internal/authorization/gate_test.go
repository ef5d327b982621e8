// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/tracing"
)

func newTestGate() *Gate {
	return NewGate(tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestGateAuthorize(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		hasTenant bool
		tier      Tier
		wantErr   error
	}{
		{
			name:      "owner satisfies owner tier",
			role:      RoleOwner,
			hasTenant: true,
			tier:      TierOwner,
			wantErr:   nil,
		},
		{
			name:      "admin rejected from owner tier",
			role:      RoleAdmin,
			hasTenant: true,
			tier:      TierOwner,
			wantErr:   ErrForbidden,
		},
		{
			name:      "owner satisfies admin tier",
			role:      RoleOwner,
			hasTenant: true,
			tier:      TierAdmin,
			wantErr:   nil,
		},
		{
			name:      "manager rejected from admin tier",
			role:      RoleManager,
			hasTenant: true,
			tier:      TierAdmin,
			wantErr:   ErrForbidden,
		},
		{
			name:      "manager satisfies manager tier",
			role:      RoleManager,
			hasTenant: true,
			tier:      TierManager,
			wantErr:   nil,
		},
		{
			name:      "waiter rejected from manager tier",
			role:      RoleWaiter,
			hasTenant: true,
			tier:      TierManager,
			wantErr:   ErrForbidden,
		},
		{
			name:      "kitchen satisfies member tier",
			role:      RoleKitchen,
			hasTenant: true,
			tier:      TierMember,
			wantErr:   nil,
		},
		{
			name:      "cashier satisfies member tier",
			role:      RoleCashier,
			hasTenant: true,
			tier:      TierMember,
			wantErr:   nil,
		},
		{
			name:      "missing tenant denied regardless of role",
			role:      RoleOwner,
			hasTenant: false,
			tier:      TierMember,
			wantErr:   ErrTenantRequired,
		},
		{
			name:      "unknown role denied",
			role:      "janitor",
			hasTenant: true,
			tier:      TierMember,
			wantErr:   ErrForbidden,
		},
	}

	gate := newTestGate()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Authorize(context.Background(), "user-1", tt.role, tt.hasTenant, tt.tier)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Authorize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleOwner, RoleAdmin, RoleManager, RoleCashier, RoleWaiter, RoleKitchen} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "superuser", "OWNER"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}
