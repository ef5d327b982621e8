// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/omnicore/restaurant-service/internal/authorization"
	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/storage"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/pkg/authentication"
)

type Middleware struct {
	resolver     ResolverInterface
	gate         GateInterface
	tenantHeader string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(resolver ResolverInterface, gate GateInterface, tenantHeader string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		resolver:     resolver,
		gate:         gate,
		tenantHeader: tenantHeader,
		tracer:       tracer,
		monitor:      monitor,
		logger:       logger,
	}
}

// ResolveTenant runs after token authentication. It loads the principal,
// resolves the request tenant from the selector header and stores the
// result in the request context.
func (m *Middleware) ResolveTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "tenancy.Middleware.ResolveTenant")
			defer span.End()

			claims, ok := authentication.GetClaims(ctx)
			if !ok {
				m.errorResponse(w, http.StatusUnauthorized, "request is not authenticated")
				return
			}

			rc, err := m.resolver.Resolve(ctx, claims.UserID, r.Header.Get(m.tenantHeader))
			if err != nil {
				switch {
				case errors.Is(err, ErrUnknownPrincipal):
					m.logger.Security().AuthnFailure(err.Error())
					m.errorResponse(w, http.StatusUnauthorized, "unknown principal")
				case errors.Is(err, ErrTenantAccessDenied):
					m.logger.Security().AuthzFailure(claims.UserID, "tenant_access")
					m.errorResponse(w, http.StatusForbidden, "tenant access denied")
				case errors.Is(err, storage.ErrTransient):
					m.logger.Errorf("tenant resolution failed: %v", err)
					m.errorResponse(w, http.StatusServiceUnavailable, "service unavailable")
				default:
					m.logger.Errorf("tenant resolution failed: %v", err)
					m.errorResponse(w, http.StatusInternalServerError, "internal server error")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRequestContext(ctx, rc)))
		})
	}
}

// RequireTier gates a route group on a minimum role tier within the
// resolved tenant.
func (m *Middleware) RequireTier(tier authorization.Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "tenancy.Middleware.RequireTier")
			defer span.End()

			rc, ok := GetRequestContext(ctx)
			if !ok || !rc.IsAuthenticated() {
				m.errorResponse(w, http.StatusUnauthorized, "request is not authenticated")
				return
			}

			if err := m.gate.Authorize(ctx, rc.User.ID, rc.Role, rc.HasTenant(), tier); err != nil {
				switch {
				case errors.Is(err, authorization.ErrTenantRequired):
					m.errorResponse(w, http.StatusBadRequest, "tenant selection required")
				case errors.Is(err, authorization.ErrForbidden):
					m.errorResponse(w, http.StatusForbidden, "forbidden")
				default:
					m.logger.Errorf("authorization failed: %v", err)
					m.errorResponse(w, http.StatusInternalServerError, "internal server error")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (m *Middleware) errorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  status,
		"message": message,
	}); err != nil {
		m.logger.Errorf("failed to encode error response: %v", err)
	}
}
