// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"context"
	"errors"
	"testing"

	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/storage"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/internal/types"
)

type fakeStorage struct {
	users       map[string]*types.User
	tenants     map[string]*types.Tenant
	memberships map[string][]*types.Membership
	err         error
}

func (f *fakeStorage) GetUserByID(_ context.Context, id string) (*types.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeStorage) ListActiveMembershipsByUserID(_ context.Context, userID string) ([]*types.Membership, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.memberships[userID], nil
}

func (f *fakeStorage) GetActiveTenantByID(_ context.Context, id string) (*types.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok || !t.Active {
		return nil, storage.ErrNotFound
	}
	return t, nil
}

func (f *fakeStorage) GetActiveTenantBySelector(_ context.Context, selector string) (*types.Tenant, error) {
	for _, t := range f.tenants {
		if t.Active && (t.ID == selector || t.Slug == selector) {
			return t, nil
		}
	}
	return nil, storage.ErrNotFound
}

func twoTenantFixture() *fakeStorage {
	return &fakeStorage{
		users: map[string]*types.User{
			"user-1": {ID: "user-1", Email: "p@example.com", Active: true},
			"user-2": {ID: "user-2", Email: "q@example.com", Active: true},
			"user-3": {ID: "user-3", Email: "s@example.com", Active: false},
		},
		tenants: map[string]*types.Tenant{
			"tenant-a": {ID: "tenant-a", Slug: "bistro-a", Active: true},
			"tenant-b": {ID: "tenant-b", Slug: "bistro-b", Active: true},
			"tenant-c": {ID: "tenant-c", Slug: "bistro-c", Active: true},
		},
		memberships: map[string][]*types.Membership{
			"user-1": {
				{ID: "m-1", TenantID: "tenant-a", UserID: "user-1", Role: "manager", Active: true},
				{ID: "m-2", TenantID: "tenant-b", UserID: "user-1", Role: "waiter", Active: true},
			},
			"user-2": {
				{ID: "m-3", TenantID: "tenant-a", UserID: "user-2", Role: "owner", Active: true},
			},
		},
	}
}

func newTestResolver(store StorageInterface) *Resolver {
	return NewResolver(store, tracing.NewNoopTracer(), monitoring.NewNoopMonitor(), logging.NewNoopLogger())
}

func TestResolveWithSelector(t *testing.T) {
	ctx := context.Background()
	resolver := newTestResolver(twoTenantFixture())

	tests := []struct {
		name     string
		userID   string
		selector string
		wantID   string
		wantRole string
	}{
		{"by id tenant a", "user-1", "tenant-a", "tenant-a", "manager"},
		{"by id tenant b", "user-1", "tenant-b", "tenant-b", "waiter"},
		{"by slug", "user-1", "bistro-b", "tenant-b", "waiter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := resolver.Resolve(ctx, tt.userID, tt.selector)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !rc.HasTenant() || rc.Tenant.ID != tt.wantID {
				t.Fatalf("resolved tenant = %+v, want %s", rc.Tenant, tt.wantID)
			}
			if rc.Role != tt.wantRole {
				t.Errorf("role = %q, want %q", rc.Role, tt.wantRole)
			}
		})
	}
}

func TestResolveSelectorDenied(t *testing.T) {
	ctx := context.Background()
	resolver := newTestResolver(twoTenantFixture())

	tests := []struct {
		name     string
		selector string
	}{
		{"tenant exists but no membership", "tenant-c"},
		{"tenant does not exist", "tenant-zz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(ctx, "user-1", tt.selector)
			if !errors.Is(err, ErrTenantAccessDenied) {
				t.Errorf("Resolve() error = %v, want ErrTenantAccessDenied", err)
			}
		})
	}
}

func TestResolveAutoSelect(t *testing.T) {
	ctx := context.Background()
	resolver := newTestResolver(twoTenantFixture())

	// Exactly one membership: the tenant is unambiguous without a header.
	rc, err := resolver.Resolve(ctx, "user-2", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !rc.HasTenant() || rc.Tenant.ID != "tenant-a" {
		t.Fatalf("resolved tenant = %+v, want tenant-a", rc.Tenant)
	}
	if rc.Role != "owner" {
		t.Errorf("role = %q, want owner", rc.Role)
	}
}

func TestResolveAutoSelectSkipsDisabledTenant(t *testing.T) {
	ctx := context.Background()
	store := twoTenantFixture()
	store.tenants["tenant-d"] = &types.Tenant{ID: "tenant-d", Slug: "bistro-d", Active: false}
	store.users["user-4"] = &types.User{ID: "user-4", Email: "r@example.com", Active: true}
	store.memberships["user-4"] = []*types.Membership{
		{ID: "m-4", TenantID: "tenant-d", UserID: "user-4", Role: "owner", Active: true},
	}
	resolver := newTestResolver(store)

	// The only membership points at a platform-disabled tenant: the
	// request must stay tenantless rather than scope into it.
	rc, err := resolver.Resolve(ctx, "user-4", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !rc.IsAuthenticated() {
		t.Fatal("request context is not authenticated")
	}
	if rc.HasTenant() {
		t.Errorf("tenant resolved to %s, want unresolved", rc.Tenant.ID)
	}
}

func TestResolveAmbiguousStaysUnresolved(t *testing.T) {
	ctx := context.Background()
	resolver := newTestResolver(twoTenantFixture())

	// Two memberships, no selector: the request context is authenticated
	// but carries no tenant.
	rc, err := resolver.Resolve(ctx, "user-1", "")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !rc.IsAuthenticated() {
		t.Fatal("request context is not authenticated")
	}
	if rc.HasTenant() {
		t.Errorf("tenant resolved to %s, want unresolved", rc.Tenant.ID)
	}
	if len(rc.Memberships) != 2 {
		t.Errorf("memberships = %d, want 2", len(rc.Memberships))
	}
}

func TestResolveUnknownPrincipal(t *testing.T) {
	ctx := context.Background()
	resolver := newTestResolver(twoTenantFixture())

	tests := []struct {
		name   string
		userID string
	}{
		{"no such user", "user-99"},
		{"suspended user", "user-3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(ctx, tt.userID, "")
			if !errors.Is(err, ErrUnknownPrincipal) {
				t.Errorf("Resolve() error = %v, want ErrUnknownPrincipal", err)
			}
		})
	}
}

func TestResolveTransientFailurePropagates(t *testing.T) {
	ctx := context.Background()
	resolver := newTestResolver(&fakeStorage{err: storage.ErrTransient})

	_, err := resolver.Resolve(ctx, "user-1", "")
	if !errors.Is(err, storage.ErrTransient) {
		t.Errorf("Resolve() error = %v, want ErrTransient", err)
	}
	if errors.Is(err, ErrUnknownPrincipal) {
		t.Errorf("transient failure misreported as unknown principal: %v", err)
	}
}
