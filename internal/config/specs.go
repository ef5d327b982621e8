// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	JWTSecret       string        `envconfig:"jwt_secret" required:"true"`
	JWTIssuer       string        `envconfig:"jwt_issuer" default:"restaurant-service"`
	AccessTokenTTL  time.Duration `envconfig:"access_token_ttl" default:"15m"`
	RefreshTokenTTL time.Duration `envconfig:"refresh_token_ttl" default:"168h"`

	// TenantHeader is the single request header consulted for tenant
	// selection. It carries a tenant ID or slug.
	TenantHeader string `envconfig:"tenant_header" default:"X-Tenant-ID"`

	// AdminToken guards the platform operator endpoints under /api/v1/admin.
	AdminToken string `envconfig:"admin_token"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`
}
