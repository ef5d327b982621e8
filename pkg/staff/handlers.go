// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package staff

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

type ProfileRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Position string  `json:"position" validate:"required,oneof=manager cashier waiter kitchen"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Phone    string  `json:"phone" validate:"max=50"`
	UserID   *string `json:"user_id"`
	Active   bool    `json:"active"`
}

type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	UserID    *string   `json:"user_id,omitempty"`
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

// Staff profiles carry personal contact details, so reads are gated the same
// as writes.
func (a *API) RegisterEndpoints(mux chi.Router, tier authorization.TierMiddlewareFunc) {
	mux.Group(func(r chi.Router) {
		r.Use(tier(authorization.TierManager))
		r.Get("/api/v1/staff", a.list)
		r.Get("/api/v1/staff/{profileID}", a.get)
		r.Post("/api/v1/staff", a.create)
		r.Put("/api/v1/staff/{profileID}", a.update)
		r.Delete("/api/v1/staff/{profileID}", a.delete)
	})
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "staff.API.list")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	list, err := a.service.ListProfiles(ctx, rc.Tenant.ID)
	if err != nil {
		a.logger.Errorf("failed to list staff profiles: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	out := make([]*ProfileResponse, len(list))
	for i, p := range list {
		out[i] = toResponse(p)
	}
	_ = httpTypes.WriteJSON(w, http.StatusOK, out)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "staff.API.get")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	profile, err := a.service.GetProfile(ctx, rc.Tenant.ID, chi.URLParam(r, "profileID"))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toResponse(profile))
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "staff.API.create")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decode(w, r)
	if !ok {
		return
	}

	profile, err := a.service.CreateProfile(ctx, req.toProfile(rc.Tenant.ID, ""))
	if err != nil {
		a.logger.Errorf("failed to create staff profile: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusCreated, toResponse(profile))
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "staff.API.update")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decode(w, r)
	if !ok {
		return
	}

	profile, err := a.service.UpdateProfile(ctx, req.toProfile(rc.Tenant.ID, chi.URLParam(r, "profileID")))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toResponse(profile))
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "staff.API.delete")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	if err := a.service.DeleteProfile(ctx, rc.Tenant.ID, chi.URLParam(r, "profileID")); err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) decode(w http.ResponseWriter, r *http.Request) (*ProfileRequest, bool) {
	var req ProfileRequest
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

func (r *ProfileRequest) toProfile(tenantID, id string) *types.StaffProfile {
	return &types.StaffProfile{
		ID:       id,
		TenantID: tenantID,
		Name:     r.Name,
		Position: r.Position,
		Email:    r.Email,
		Phone:    r.Phone,
		UserID:   r.UserID,
		Active:   r.Active,
	}
}

func toResponse(p *types.StaffProfile) *ProfileResponse {
	return &ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Position:  p.Position,
		Email:     p.Email,
		Phone:     p.Phone,
		UserID:    p.UserID,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
