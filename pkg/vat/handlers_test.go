// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package vat

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
	taxes  map[string]*types.VatTax
	nextID int
}

func (f *fakeStorage) CreateVatTax(_ context.Context, v *types.VatTax) (*types.VatTax, error) {
	for _, existing := range f.taxes {
		if existing.TenantID == v.TenantID && existing.Name == v.Name {
			return nil, storage.ErrDuplicateKey
		}
	}
	f.nextID++
	created := *v
	created.ID = "vat-" + strconv.Itoa(f.nextID)
	f.taxes[created.ID] = &created
	return &created, nil
}

func (f *fakeStorage) GetVatTax(_ context.Context, tenantID, id string) (*types.VatTax, error) {
	v, ok := f.taxes[id]
	if !ok || v.TenantID != tenantID {
		return nil, storage.ErrNotFound
	}
	return v, nil
}

func (f *fakeStorage) ListVatTaxes(_ context.Context, tenantID string) ([]*types.VatTax, error) {
	out := make([]*types.VatTax, 0)
	for _, v := range f.taxes {
		if v.TenantID == tenantID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStorage) UpdateVatTax(_ context.Context, v *types.VatTax) error {
	existing, ok := f.taxes[v.ID]
	if !ok || existing.TenantID != v.TenantID {
		return storage.ErrNotFound
	}
	f.taxes[v.ID] = v
	return nil
}

func (f *fakeStorage) DeleteVatTax(_ context.Context, tenantID, id string) error {
	v, ok := f.taxes[id]
	if !ok || v.TenantID != tenantID {
		return storage.ErrNotFound
	}
	delete(f.taxes, id)
	return nil
}

func passthroughTier(authorization.Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

func newTestMux() (*chi.Mux, *fakeStorage) {
	store := &fakeStorage{taxes: make(map[string]*types.VatTax)}
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
		Role:   "admin",
	}
	return req.WithContext(tenancy.WithRequestContext(context.Background(), rc))
}

func TestTaxLifecycle(t *testing.T) {
	mux, store := newTestMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPost, "/api/v1/settings/vat",
		TaxRequest{Name: "Standard", Rate: "23.00", Active: true}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created TaxResponse
	_ = json.NewDecoder(rec.Body).Decode(&created)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPut, "/api/v1/settings/vat/"+created.ID,
		TaxRequest{Name: "Standard", Rate: "21.00", Active: true}))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
	}
	if store.taxes[created.ID].Rate != "21.00" {
		t.Errorf("rate = %q, want 21.00", store.taxes[created.ID].Rate)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPost, "/api/v1/settings/vat",
		TaxRequest{Name: "Standard", Rate: "13.00", Active: true}))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate name status = %d, want 409", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-b", http.MethodGet, "/api/v1/settings/vat/"+created.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-tenant get status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodDelete, "/api/v1/settings/vat/"+created.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestTaxValidation(t *testing.T) {
	mux, _ := newTestMux()

	tests := []struct {
		name string
		body TaxRequest
	}{
		{"missing name", TaxRequest{Rate: "23.00"}},
		{"missing rate", TaxRequest{Name: "Standard"}},
		{"non-numeric rate", TaxRequest{Name: "Standard", Rate: "twenty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, scopedRequest("tenant-a", http.MethodPost, "/api/v1/settings/vat", tt.body))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
