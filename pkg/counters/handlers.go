// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package counters

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

type CounterRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	Location    string `json:"location" validate:"max=200"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type CounterItemsRequest struct {
	ItemIDs []string `json:"item_ids" validate:"dive,required"`
}

type CounterResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	ItemIDs     []string  `json:"item_ids"`
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
		r.Get("/api/v1/counters", a.list)
		r.Get("/api/v1/counters/{counterID}", a.get)
	})
	mux.Group(func(r chi.Router) {
		r.Use(tier(authorization.TierManager))
		r.Post("/api/v1/counters", a.create)
		r.Put("/api/v1/counters/{counterID}", a.update)
		r.Delete("/api/v1/counters/{counterID}", a.delete)
		r.Put("/api/v1/counters/{counterID}/items", a.setItems)
	})
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "counters.API.list")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	list, err := a.service.ListCounters(ctx, rc.Tenant.ID)
	if err != nil {
		a.logger.Errorf("failed to list counters: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	out := make([]*CounterResponse, len(list))
	for i, c := range list {
		out[i] = toResponse(c)
	}
	_ = httpTypes.WriteJSON(w, http.StatusOK, out)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "counters.API.get")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	counter, err := a.service.GetCounter(ctx, rc.Tenant.ID, chi.URLParam(r, "counterID"))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toResponse(counter))
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "counters.API.create")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decode(w, r)
	if !ok {
		return
	}

	counter, err := a.service.CreateCounter(ctx, req.toCounter(rc.Tenant.ID, ""))
	if err != nil {
		a.logger.Errorf("failed to create counter: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusCreated, toResponse(counter))
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "counters.API.update")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decode(w, r)
	if !ok {
		return
	}

	counter, err := a.service.UpdateCounter(ctx, req.toCounter(rc.Tenant.ID, chi.URLParam(r, "counterID")))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toResponse(counter))
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "counters.API.delete")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	if err := a.service.DeleteCounter(ctx, rc.Tenant.ID, chi.URLParam(r, "counterID")); err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) setItems(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "counters.API.setItems")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	var req CounterItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		_ = httpTypes.WriteValidationError(w, err)
		return
	}

	counter, err := a.service.SetItems(ctx, rc.Tenant.ID, chi.URLParam(r, "counterID"), req.ItemIDs)
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toResponse(counter))
}

func (a *API) decode(w http.ResponseWriter, r *http.Request) (*CounterRequest, bool) {
	var req CounterRequest
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

func (r *CounterRequest) toCounter(tenantID, id string) *types.Counter {
	status := r.Status
	if status == "" {
		status = "active"
	}
	return &types.Counter{
		ID:          id,
		TenantID:    tenantID,
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Status:      status,
	}
}

func toResponse(c *types.Counter) *CounterResponse {
	itemIDs := c.ItemIDs
	if itemIDs == nil {
		itemIDs = []string{}
	}
	return &CounterResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Location:    c.Location,
		Status:      c.Status,
		ItemIDs:     itemIDs,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
