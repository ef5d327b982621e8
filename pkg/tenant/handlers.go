// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/omnicore/restaurant-service/internal/authorization"
	httpTypes "github.com/omnicore/restaurant-service/internal/http/types"
	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/pkg/authentication"
	"github.com/omnicore/restaurant-service/pkg/tenancy"
)

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

// RegisterEndpoints mounts the authenticated, tenant-agnostic routes.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Get("/api/v1/tenants", a.listMyTenants)
}

// RegisterTenantEndpoints mounts the tenant-scoped routes with their role
// tiers.
func (a *API) RegisterTenantEndpoints(mux chi.Router, tier authorization.TierMiddlewareFunc) {
	mux.Group(func(r chi.Router) {
		r.Use(tier(authorization.TierMember))
		r.Get("/api/v1/tenant", a.getTenant)
	})
	mux.Group(func(r chi.Router) {
		r.Use(tier(authorization.TierAdmin))
		r.Patch("/api/v1/tenant", a.updateTenant)
		r.Get("/api/v1/tenant/users", a.listUsers)
		r.Post("/api/v1/tenant/users", a.addUser)
		r.Put("/api/v1/tenant/users/{userID}/role", a.updateUserRole)
		r.Put("/api/v1/tenant/users/{userID}/status", a.setUserStatus)
	})
}

// RegisterAdminEndpoints mounts the platform operator routes. The caller
// wraps them with the admin token check.
func (a *API) RegisterAdminEndpoints(mux chi.Router) {
	mux.Post("/api/v1/admin/tenants", a.adminCreateTenant)
	mux.Get("/api/v1/admin/tenants", a.adminListTenants)
	mux.Patch("/api/v1/admin/tenants/{tenantID}/status", a.adminSetTenantStatus)
}

func (a *API) listMyTenants(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.listMyTenants")
	defer span.End()

	claims, ok := authentication.GetClaims(ctx)
	if !ok {
		_ = httpTypes.WriteJSON(w, http.StatusUnauthorized, &httpTypes.ErrorResponse{Status: http.StatusUnauthorized, Message: "request is not authenticated"})
		return
	}

	tenants, err := a.service.ListMyTenants(ctx, claims.UserID)
	if err != nil {
		a.logger.Errorf("failed to list tenants: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toTenantResponses(tenants))
}

func (a *API) getTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.getTenant")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	tenant, err := a.service.GetTenant(ctx, rc.Tenant.ID)
	if err != nil {
		a.logger.Errorf("failed to get tenant: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toTenantResponse(tenant))
}

func (a *API) updateTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.updateTenant")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	var req UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		_ = httpTypes.WriteValidationError(w, err)
		return
	}

	update, paths := req.Fields(rc.Tenant.ID)
	tenant, err := a.service.UpdateTenant(ctx, update, paths)
	if err != nil {
		a.logger.Errorf("failed to update tenant: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toTenantResponse(tenant))
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.listUsers")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	users, err := a.service.ListTenantUsers(ctx, rc.Tenant.ID)
	if err != nil {
		a.logger.Errorf("failed to list tenant users: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toTenantUserResponses(users))
}

func (a *API) addUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.addUser")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	var req AddUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		_ = httpTypes.WriteValidationError(w, err)
		return
	}

	user, err := a.service.AddTenantUser(ctx, rc.Tenant.ID, req.Email, req.Role, rc.Role)
	if err != nil {
		a.writeMembershipError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusCreated, &TenantUserResponse{
		UserID:   user.UserID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		Active:   user.Active,
	})
}

func (a *API) updateUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.updateUserRole")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)
	userID := chi.URLParam(r, "userID")

	var req UpdateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		_ = httpTypes.WriteValidationError(w, err)
		return
	}

	if err := a.service.UpdateTenantUserRole(ctx, rc.Tenant.ID, userID, req.Role, rc.Role); err != nil {
		a.writeMembershipError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) setUserStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.setUserStatus")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)
	userID := chi.URLParam(r, "userID")

	var req SetUserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid request body"})
		return
	}

	if err := a.service.SetTenantUserStatus(ctx, rc.Tenant.ID, userID, req.Active); err != nil {
		a.logger.Errorf("failed to set member status: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) adminCreateTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.adminCreateTenant")
	defer span.End()

	var req CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		_ = httpTypes.WriteValidationError(w, err)
		return
	}

	tenant, err := a.service.CreateTenant(ctx, req.Name, req.Slug, req.OwnerEmail)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			_ = httpTypes.WriteJSON(w, http.StatusUnprocessableEntity, &httpTypes.ErrorResponse{Status: http.StatusUnprocessableEntity, Message: "owner email is not a registered user"})
			return
		}
		a.logger.Errorf("failed to create tenant: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusCreated, toTenantResponse(tenant))
}

func (a *API) adminListTenants(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.adminListTenants")
	defer span.End()

	tenants, err := a.service.ListTenants(ctx)
	if err != nil {
		a.logger.Errorf("failed to list all tenants: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toTenantResponses(tenants))
}

func (a *API) adminSetTenantStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.adminSetTenantStatus")
	defer span.End()

	tenantID := chi.URLParam(r, "tenantID")

	var req SetTenantStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid request body"})
		return
	}

	if err := a.service.SetTenantStatus(ctx, tenantID, req.Active); err != nil {
		a.logger.Errorf("failed to set tenant status: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) writeMembershipError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidRole):
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid role"})
	case errors.Is(err, ErrOwnerRequired):
		_ = httpTypes.WriteJSON(w, http.StatusForbidden, &httpTypes.ErrorResponse{Status: http.StatusForbidden, Message: "owner role required"})
	case errors.Is(err, ErrUnknownUser):
		_ = httpTypes.WriteJSON(w, http.StatusUnprocessableEntity, &httpTypes.ErrorResponse{Status: http.StatusUnprocessableEntity, Message: "no user with that email"})
	default:
		a.logger.Errorf("membership operation failed: %v", err)
		_ = httpTypes.WriteError(w, err)
	}
}
