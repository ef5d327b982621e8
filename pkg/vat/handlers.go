// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package vat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/omnicore/restaurant-service/internal/authorization"
	httpTypes "github.com/omnicore/restaurant-service/internal/http/types"
	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/internal/types"
	"github.com/omnicore/restaurant-service/pkg/tenancy"
)

type TaxRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Rate        string `json:"rate" validate:"required,numeric"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type TaxResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Rate        string    `json:"rate"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service:  service,
		validate: validator.New(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (a *API) RegisterEndpoints(mux chi.Router, tier authorization.TierMiddlewareFunc) {
	mux.Group(func(r chi.Router) {
		r.Use(tier(authorization.TierMember))
		r.Get("/api/v1/settings/vat", a.list)
		r.Get("/api/v1/settings/vat/{taxID}", a.get)
	})
	mux.Group(func(r chi.Router) {
		r.Use(tier(authorization.TierAdmin))
		r.Post("/api/v1/settings/vat", a.create)
		r.Put("/api/v1/settings/vat/{taxID}", a.update)
		r.Delete("/api/v1/settings/vat/{taxID}", a.delete)
	})
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "vat.API.list")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	list, err := a.service.ListTaxes(ctx, rc.Tenant.ID)
	if err != nil {
		a.logger.Errorf("failed to list vat taxes: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	out := make([]*TaxResponse, len(list))
	for i, v := range list {
		out[i] = toResponse(v)
	}
	_ = httpTypes.WriteJSON(w, http.StatusOK, out)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "vat.API.get")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	tax, err := a.service.GetTax(ctx, rc.Tenant.ID, chi.URLParam(r, "taxID"))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toResponse(tax))
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "vat.API.create")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decode(w, r)
	if !ok {
		return
	}

	tax, err := a.service.CreateTax(ctx, req.toTax(rc.Tenant.ID, ""))
	if err != nil {
		a.logger.Errorf("failed to create vat tax: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusCreated, toResponse(tax))
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "vat.API.update")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decode(w, r)
	if !ok {
		return
	}

	tax, err := a.service.UpdateTax(ctx, req.toTax(rc.Tenant.ID, chi.URLParam(r, "taxID")))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toResponse(tax))
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "vat.API.delete")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	if err := a.service.DeleteTax(ctx, rc.Tenant.ID, chi.URLParam(r, "taxID")); err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) decode(w http.ResponseWriter, r *http.Request) (*TaxRequest, bool) {
	var req TaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid request body"})
		return nil, false
	}
	if err := a.validate.Struct(req); err != nil {
		_ = httpTypes.WriteValidationError(w, err)
		return nil, false
	}
	return &req, true
}

func (r *TaxRequest) toTax(tenantID, id string) *types.VatTax {
	return &types.VatTax{
		ID:          id,
		TenantID:    tenantID,
		Name:        r.Name,
		Rate:        r.Rate,
		Description: r.Description,
		Active:      r.Active,
	}
}

func toResponse(v *types.VatTax) *TaxResponse {
	return &TaxResponse{
		ID:          v.ID,
		Name:        v.Name,
		Rate:        v.Rate,
		Description: v.Description,
		Active:      v.Active,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}
