// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omnicore/restaurant-service/internal/authorization"
	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/pkg/authentication"
)

const testTenantHeader = "X-Tenant-ID"

func newStackMiddleware(store StorageInterface) *Middleware {
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor()
	logger := logging.NewNoopLogger()
	resolver := NewResolver(store, tracer, monitor, logger)
	gate := authorization.NewGate(tracer, monitor, logger)
	return NewMiddleware(resolver, gate, testTenantHeader, tracer, monitor, logger)
}

func authedRequest(userID, tenantHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu/items", nil)
	ctx := authentication.WithClaims(req.Context(), &authentication.Claims{
		UserID:    userID,
		TokenID:   "jti-1",
		Kind:      authentication.KindAccess,
		ExpiresAt: time.Now().Add(time.Minute),
	})
	if tenantHeader != "" {
		req.Header.Set(testTenantHeader, tenantHeader)
	}
	return req.WithContext(ctx)
}

func TestResolveTenantMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		header     string
		wantStatus int
		wantTenant string
	}{
		{
			name:       "member of two tenants selects a",
			userID:     "user-1",
			header:     "tenant-a",
			wantStatus: http.StatusOK,
			wantTenant: "tenant-a",
		},
		{
			name:       "member of two tenants selects b by slug",
			userID:     "user-1",
			header:     "bistro-b",
			wantStatus: http.StatusOK,
			wantTenant: "tenant-b",
		},
		{
			name:       "member of two tenants without header passes unresolved",
			userID:     "user-1",
			header:     "",
			wantStatus: http.StatusOK,
			wantTenant: "",
		},
		{
			name:       "single membership auto-selects",
			userID:     "user-2",
			header:     "",
			wantStatus: http.StatusOK,
			wantTenant: "tenant-a",
		},
		{
			name:       "selector without membership is denied",
			userID:     "user-2",
			header:     "tenant-b",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown user is unauthorized",
			userID:     "user-99",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "suspended user is unauthorized",
			userID:     "user-3",
			header:     "tenant-a",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newStackMiddleware(twoTenantFixture())

			var gotTenant string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if rc, ok := GetRequestContext(r.Context()); ok && rc.HasTenant() {
					gotTenant = rc.Tenant.ID
				}
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			m.ResolveTenant()(next).ServeHTTP(rec, authedRequest(tt.userID, tt.header))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if gotTenant != tt.wantTenant {
				t.Errorf("resolved tenant = %q, want %q", gotTenant, tt.wantTenant)
			}
		})
	}
}

func TestResolveTenantWithoutAuthentication(t *testing.T) {
	m := newStackMiddleware(twoTenantFixture())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached without authentication")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu/items", nil)
	rec := httptest.NewRecorder()
	m.ResolveTenant()(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireTier(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		header     string
		tier       authorization.Tier
		wantStatus int
	}{
		{
			name:       "manager passes manager tier in tenant a",
			userID:     "user-1",
			header:     "tenant-a",
			tier:       authorization.TierManager,
			wantStatus: http.StatusOK,
		},
		{
			name:       "same user is only a waiter in tenant b",
			userID:     "user-1",
			header:     "tenant-b",
			tier:       authorization.TierManager,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "waiter passes member tier in tenant b",
			userID:     "user-1",
			header:     "tenant-b",
			tier:       authorization.TierMember,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unresolved tenant on scoped route",
			userID:     "user-1",
			header:     "",
			tier:       authorization.TierMember,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "owner passes owner tier",
			userID:     "user-2",
			header:     "",
			tier:       authorization.TierOwner,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newStackMiddleware(twoTenantFixture())

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := m.ResolveTenant()(m.RequireTier(tt.tier)(next))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, authedRequest(tt.userID, tt.header))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
