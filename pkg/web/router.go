// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/omnicore/restaurant-service/internal/authorization"
	"github.com/omnicore/restaurant-service/internal/db"
	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/storage"
	"github.com/omnicore/restaurant-service/internal/tracing"
	"github.com/omnicore/restaurant-service/pkg/auth"
	"github.com/omnicore/restaurant-service/pkg/authentication"
	"github.com/omnicore/restaurant-service/pkg/counters"
	"github.com/omnicore/restaurant-service/pkg/menu"
	"github.com/omnicore/restaurant-service/pkg/metrics"
	"github.com/omnicore/restaurant-service/pkg/staff"
	"github.com/omnicore/restaurant-service/pkg/status"
	"github.com/omnicore/restaurant-service/pkg/tables"
	"github.com/omnicore/restaurant-service/pkg/tenancy"
	"github.com/omnicore/restaurant-service/pkg/tenant"
	"github.com/omnicore/restaurant-service/pkg/vat"
)

// Config carries the request pipeline settings the router cannot derive
// from its collaborators.
type Config struct {
	TenantHeader       string
	AdminToken         string
	CORSAllowedOrigins []string
}

func NewRouter(
	cfg Config,
	store *storage.Storage,
	dbClient db.DBClientInterface,
	issuer authentication.TokenIssuerInterface,
	verifier authentication.TokenVerifierInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	router.Use(
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(cfg.CORSAllowedOrigins, cfg.TenantHeader),
	)

	authnMiddleware := authentication.NewMiddleware(verifier, tracer, monitor, logger)
	tenancyMiddleware := tenancy.NewMiddleware(
		tenancy.NewResolver(store, tracer, monitor, logger),
		authorization.NewGate(tracer, monitor, logger),
		cfg.TenantHeader,
		tracer, monitor, logger,
	)

	authAPI := auth.NewAPI(
		auth.NewService(store, issuer, verifier, store, tracer, monitor, logger),
		tracer, monitor, logger,
	)
	tenantAPI := tenant.NewAPI(tenant.NewService(store, tracer, monitor, logger), tracer, monitor, logger)
	menuAPI := menu.NewAPI(menu.NewService(store, tracer, monitor, logger), tracer, monitor, logger)
	tablesAPI := tables.NewAPI(tables.NewService(store, tracer, monitor, logger), tracer, monitor, logger)
	countersAPI := counters.NewAPI(counters.NewService(store, tracer, monitor, logger), tracer, monitor, logger)
	staffAPI := staff.NewAPI(staff.NewService(store, tracer, monitor, logger), tracer, monitor, logger)
	vatAPI := vat.NewAPI(vat.NewService(store, tracer, monitor, logger), tracer, monitor, logger)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	// Credential endpoints run before any token is available.
	router.Group(func(r chi.Router) {
		r.Use(db.TransactionMiddleware(dbClient, logger))
		authAPI.RegisterExemptEndpoints(r)
	})

	router.Group(func(r chi.Router) {
		r.Use(db.TransactionMiddleware(dbClient, logger))
		r.Use(authnMiddleware.Authenticate())
		r.Use(tenancyMiddleware.ResolveTenant())

		authAPI.RegisterEndpoints(r)
		tenantAPI.RegisterEndpoints(r)
		tenantAPI.RegisterTenantEndpoints(r, tenancyMiddleware.RequireTier)
		menuAPI.RegisterEndpoints(r, tenancyMiddleware.RequireTier)
		tablesAPI.RegisterEndpoints(r, tenancyMiddleware.RequireTier)
		countersAPI.RegisterEndpoints(r, tenancyMiddleware.RequireTier)
		staffAPI.RegisterEndpoints(r, tenancyMiddleware.RequireTier)
		vatAPI.RegisterEndpoints(r, tenancyMiddleware.RequireTier)
	})

	// Platform operator surface, guarded by a static token rather than the
	// user token pipeline.
	router.Group(func(r chi.Router) {
		r.Use(db.TransactionMiddleware(dbClient, logger))
		r.Use(middlewareAdminToken(cfg.AdminToken, logger))
		tenantAPI.RegisterAdminEndpoints(r)
	})

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

func middlewareCORS(allowedOrigins []string, tenantHeader string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", tenantHeader},
		MaxAge:         300,
	})
}
