// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tables

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
	tables map[string]*types.Table
	nextID int
}

func (f *fakeStorage) CreateTable(_ context.Context, t *types.Table) (*types.Table, error) {
	for _, existing := range f.tables {
		if existing.TenantID == t.TenantID && existing.Number == t.Number {
			return nil, storage.ErrDuplicateKey
		}
	}
	f.nextID++
	created := *t
	created.ID = "table-" + strconv.Itoa(f.nextID)
	f.tables[created.ID] = &created
	return &created, nil
}

func (f *fakeStorage) GetTable(_ context.Context, tenantID, id string) (*types.Table, error) {
	t, ok := f.tables[id]
	if !ok || t.TenantID != tenantID {
		return nil, storage.ErrNotFound
	}
	return t, nil
}

func (f *fakeStorage) ListTables(_ context.Context, tenantID string) ([]*types.Table, error) {
	out := make([]*types.Table, 0)
	for _, t := range f.tables {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStorage) UpdateTable(_ context.Context, t *types.Table) error {
	existing, ok := f.tables[t.ID]
	if !ok || existing.TenantID != t.TenantID {
		return storage.ErrNotFound
	}
	f.tables[t.ID] = t
	return nil
}

func (f *fakeStorage) DeleteTable(_ context.Context, tenantID, id string) error {
	t, ok := f.tables[id]
	if !ok || t.TenantID != tenantID {
		return storage.ErrNotFound
	}
	delete(f.tables, id)
	return nil
}

func passthroughTier(authorization.Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

func newTestMux() (*chi.Mux, *fakeStorage) {
	store := &fakeStorage{tables: make(map[string]*types.Table)}
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

func TestTableLifecycle(t *testing.T) {
	mux, store := newTestMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPost, "/api/v1/tables",
		TableRequest{Number: "T1", Capacity: 4, Area: "terrace", Active: true}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created TableResponse
	_ = json.NewDecoder(rec.Body).Decode(&created)
	if created.Status != "available" {
		t.Errorf("default status = %q, want available", created.Status)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPut, "/api/v1/tables/"+created.ID,
		TableRequest{Number: "T1", Capacity: 6, Status: "reserved", Active: true}))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	if store.tables[created.ID].Capacity != 6 {
		t.Errorf("capacity = %d, want 6", store.tables[created.ID].Capacity)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-b", http.MethodDelete, "/api/v1/tables/"+created.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-tenant delete status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodDelete, "/api/v1/tables/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
}

func TestTableValidation(t *testing.T) {
	mux, _ := newTestMux()

	tests := []struct {
		name string
		body TableRequest
	}{
		{"missing number", TableRequest{Capacity: 4}},
		{"zero capacity", TableRequest{Number: "T1"}},
		{"oversized capacity", TableRequest{Number: "T1", Capacity: 500}},
		{"bogus status", TableRequest{Number: "T1", Capacity: 4, Status: "on-fire"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPost, "/api/v1/tables", tt.body))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestDuplicateTableNumber(t *testing.T) {
	mux, _ := newTestMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPost, "/api/v1/tables",
		TableRequest{Number: "T1", Capacity: 4}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPost, "/api/v1/tables",
		TableRequest{Number: "T1", Capacity: 2}))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}

	// Same number in another tenant is fine.
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-b", http.MethodPost, "/api/v1/tables",
		TableRequest{Number: "T1", Capacity: 2}))
	if rec.Code != http.StatusCreated {
		t.Errorf("other tenant status = %d, want 201", rec.Code)
	}
}
