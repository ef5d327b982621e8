// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package staff

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/omnicore/restaurant-service/internal/authorization"
	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/storage"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/internal/types"
	"github.com/omnicore/restaurant-service/pkg/tenancy"
)

type fakeStorage struct {
	profiles map[string]*types.StaffProfile
	nextID   int
}

func (f *fakeStorage) CreateStaffProfile(_ context.Context, p *types.StaffProfile) (*types.StaffProfile, error) {
	f.nextID++
	created := *p
	created.ID = "staff-" + strconv.Itoa(f.nextID)
	f.profiles[created.ID] = &created
	return &created, nil
}

func (f *fakeStorage) GetStaffProfile(_ context.Context, tenantID, id string) (*types.StaffProfile, error) {
	p, ok := f.profiles[id]
	if !ok || p.TenantID != tenantID {
		return nil, storage.ErrNotFound
	}
	return p, nil
}

func (f *fakeStorage) ListStaffProfiles(_ context.Context, tenantID string) ([]*types.StaffProfile, error) {
	out := make([]*types.StaffProfile, 0)
	for _, p := range f.profiles {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStorage) UpdateStaffProfile(_ context.Context, p *types.StaffProfile) error {
	existing, ok := f.profiles[p.ID]
	if !ok || existing.TenantID != p.TenantID {
		return storage.ErrNotFound
	}
	f.profiles[p.ID] = p
	return nil
}

func (f *fakeStorage) DeleteStaffProfile(_ context.Context, tenantID, id string) error {
	p, ok := f.profiles[id]
	if !ok || p.TenantID != tenantID {
		return storage.ErrNotFound
	}
	delete(f.profiles, id)
	return nil
}

func passthroughTier(authorization.Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

func newTestMux() (*chi.Mux, *fakeStorage) {
	store := &fakeStorage{profiles: make(map[string]*types.StaffProfile)}
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor()
	logger := logging.NewNoopLogger()
	api := NewAPI(NewService(store, tracer, monitor, logger), tracer, monitor, logger)
	mux := chi.NewMux()
	api.RegisterEndpoints(mux, passthroughTier)
	return mux, store
}

func scopedRequest(tenantID, method, path string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	rc := &tenancy.RequestContext{
		User:   &types.User{ID: "user-1", Active: true},
		Tenant: &types.Tenant{ID: tenantID, Active: true},
		Role:   "manager",
	}
	return req.WithContext(tenancy.WithRequestContext(context.Background(), rc))
}

func TestProfileLifecycle(t *testing.T) {
	mux, store := newTestMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPost, "/api/v1/staff",
		ProfileRequest{Name: "Maria Silva", Position: "waiter", Email: "maria@example.com", Active: true}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created ProfileResponse
	_ = json.NewDecoder(rec.Body).Decode(&created)
	if created.UserID != nil {
		t.Errorf("user_id = %v, want unlinked", *created.UserID)
	}

	userID := "user-9"
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPut, "/api/v1/staff/"+created.ID,
		ProfileRequest{Name: "Maria Silva", Position: "manager", UserID: &userID, Active: true}))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := store.profiles[created.ID]; got.UserID == nil || *got.UserID != userID {
		t.Errorf("stored user link = %v, want %q", got.UserID, userID)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-b", http.MethodGet, "/api/v1/staff/"+created.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-tenant get status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodDelete, "/api/v1/staff/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestProfileValidation(t *testing.T) {
	mux, _ := newTestMux()

	tests := []struct {
		name string
		body ProfileRequest
	}{
		{"missing name", ProfileRequest{Position: "waiter"}},
		{"bad position", ProfileRequest{Name: "Jo", Position: "cook"}},
		{"bad email", ProfileRequest{Name: "Jo", Position: "waiter", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPost, "/api/v1/staff", tt.body))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
