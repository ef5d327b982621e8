// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tables

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

type TableRequest struct {
	Number   string `json:"number" validate:"required,max=20"`
	Name     string `json:"name" validate:"max=200"`
	Capacity int    `json:"capacity" validate:"required,gte=1,lte=100"`
	Status   string `json:"status" validate:"omitempty,oneof=available occupied reserved cleaning"`
	Area     string `json:"area" validate:"max=100"`
	Notes    string `json:"notes"`
	Active   bool   `json:"active"`
}

type TableResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Status    string    `json:"status"`
	Area      string    `json:"area"`
	Notes     string    `json:"notes"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
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
		r.Get("/api/v1/tables", a.list)
		r.Get("/api/v1/tables/{tableID}", a.get)
	})
	mux.Group(func(r chi.Router) {
		r.Use(tier(authorization.TierManager))
		r.Post("/api/v1/tables", a.create)
		r.Put("/api/v1/tables/{tableID}", a.update)
		r.Delete("/api/v1/tables/{tableID}", a.delete)
	})
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tables.API.list")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	list, err := a.service.ListTables(ctx, rc.Tenant.ID)
	if err != nil {
		a.logger.Errorf("failed to list tables: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	out := make([]*TableResponse, len(list))
	for i, t := range list {
		out[i] = toResponse(t)
	}
	_ = httpTypes.WriteJSON(w, http.StatusOK, out)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tables.API.get")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	table, err := a.service.GetTable(ctx, rc.Tenant.ID, chi.URLParam(r, "tableID"))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toResponse(table))
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tables.API.create")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decode(w, r)
	if !ok {
		return
	}

	table, err := a.service.CreateTable(ctx, req.toTable(rc.Tenant.ID, ""))
	if err != nil {
		a.logger.Errorf("failed to create table: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusCreated, toResponse(table))
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tables.API.update")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decode(w, r)
	if !ok {
		return
	}

	table, err := a.service.UpdateTable(ctx, req.toTable(rc.Tenant.ID, chi.URLParam(r, "tableID")))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toResponse(table))
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tables.API.delete")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	if err := a.service.DeleteTable(ctx, rc.Tenant.ID, chi.URLParam(r, "tableID")); err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) decode(w http.ResponseWriter, r *http.Request) (*TableRequest, bool) {
	var req TableRequest
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

func (r *TableRequest) toTable(tenantID, id string) *types.Table {
	status := r.Status
	if status == "" {
		status = "available"
	}
	return &types.Table{
		ID:       id,
		TenantID: tenantID,
		Number:   r.Number,
		Name:     r.Name,
		Capacity: r.Capacity,
		Status:   status,
		Area:     r.Area,
		Notes:    r.Notes,
		Active:   r.Active,
	}
}

func toResponse(t *types.Table) *TableResponse {
	return &TableResponse{
		ID:        t.ID,
		Number:    t.Number,
		Name:      t.Name,
		Capacity:  t.Capacity,
		Status:    t.Status,
		Area:      t.Area,
		Notes:     t.Notes,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
