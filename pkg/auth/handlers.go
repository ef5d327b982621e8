// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httpTypes "github.com/omnicore/restaurant-service/internal/http/types"
	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/pkg/authentication"
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

// RegisterExemptEndpoints mounts the routes anonymous callers may reach.
func (a *API) RegisterExemptEndpoints(mux chi.Router) {
	mux.Post("/api/v1/auth/register", a.register)
	mux.Post("/api/v1/auth/login", a.login)
	mux.Post("/api/v1/auth/refresh", a.refresh)
}

// RegisterEndpoints mounts the routes that require a valid access token.
func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Post("/api/v1/auth/logout", a.logout)
	mux.Get("/api/v1/auth/me", a.me)
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "auth.API.register")
	defer span.End()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		_ = httpTypes.WriteValidationError(w, err)
		return
	}

	session, err := a.service.Register(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			_ = httpTypes.WriteJSON(w, http.StatusConflict, &httpTypes.ErrorResponse{Status: http.StatusConflict, Message: "email already registered"})
			return
		}
		a.logger.Errorf("registration failed: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusCreated, &SessionResponse{
		User:    toUserResponse(session.User),
		Tokens:  session.Tokens,
		Tenants: toTenantResponses(session.Tenants),
	})
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "auth.API.login")
	defer span.End()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		_ = httpTypes.WriteValidationError(w, err)
		return
	}

	session, err := a.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidLogin) {
			_ = httpTypes.WriteJSON(w, http.StatusUnauthorized, &httpTypes.ErrorResponse{Status: http.StatusUnauthorized, Message: "invalid email or password"})
			return
		}
		a.logger.Errorf("login failed: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, &SessionResponse{
		User:    toUserResponse(session.User),
		Tokens:  session.Tokens,
		Tenants: toTenantResponses(session.Tenants),
	})
}

func (a *API) refresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "auth.API.refresh")
	defer span.End()

	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = httpTypes.WriteJSON(w, http.StatusBadRequest, &httpTypes.ErrorResponse{Status: http.StatusBadRequest, Message: "invalid request body"})
		return
	}
	if err := a.validate.Struct(req); err != nil {
		_ = httpTypes.WriteValidationError(w, err)
		return
	}

	tokens, err := a.service.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if isCredentialError(err) {
			_ = httpTypes.WriteJSON(w, http.StatusUnauthorized, &httpTypes.ErrorResponse{Status: http.StatusUnauthorized, Message: "invalid refresh token"})
			return
		}
		a.logger.Errorf("token refresh failed: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, tokens)
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "auth.API.logout")
	defer span.End()

	claims, ok := authentication.GetClaims(ctx)
	if !ok {
		_ = httpTypes.WriteJSON(w, http.StatusUnauthorized, &httpTypes.ErrorResponse{Status: http.StatusUnauthorized, Message: "request is not authenticated"})
		return
	}

	// The body is optional: a logout without a refresh token still revokes
	// the access token.
	var req LogoutRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := a.service.Logout(ctx, claims, req.RefreshToken); err != nil {
		a.logger.Errorf("logout failed: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "auth.API.me")
	defer span.End()

	claims, ok := authentication.GetClaims(ctx)
	if !ok {
		_ = httpTypes.WriteJSON(w, http.StatusUnauthorized, &httpTypes.ErrorResponse{Status: http.StatusUnauthorized, Message: "request is not authenticated"})
		return
	}

	profile, err := a.service.Profile(ctx, claims.UserID)
	if err != nil {
		a.logger.Errorf("failed to load profile: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	memberships := make([]*MembershipResponse, len(profile.Memberships))
	for i, m := range profile.Memberships {
		memberships[i] = &MembershipResponse{TenantID: m.TenantID, Role: m.Role}
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, &ProfileResponse{
		User:        toUserResponse(profile.User),
		Memberships: memberships,
		Tenants:     toTenantResponses(profile.Tenants),
	})
}

func isCredentialError(err error) bool {
	return errors.Is(err, authentication.ErrInvalidCredential) ||
		errors.Is(err, authentication.ErrExpiredCredential) ||
		errors.Is(err, authentication.ErrRevokedCredential)
}
