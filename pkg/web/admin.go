// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"crypto/subtle"
	"net/http"

	httpTypes "github.com/omnicore/restaurant-service/internal/http/types"
	"github.com/omnicore/restaurant-service/internal/logging"
)

const adminTokenHeader = "X-Admin-Token"

// middlewareAdminToken guards the operator endpoints with a static token.
// An empty configured token disables the surface entirely.
func middlewareAdminToken(token string, logger logging.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				_ = httpTypes.WriteJSON(w, http.StatusForbidden, &httpTypes.ErrorResponse{
					Status:  http.StatusForbidden,
					Message: "admin API is disabled",
				})
				return
			}

			provided := r.Header.Get(adminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				logger.Warnf("admin token rejected for %s %s", r.Method, r.URL.Path)
				_ = httpTypes.WriteJSON(w, http.StatusForbidden, &httpTypes.ErrorResponse{
					Status:  http.StatusForbidden,
					Message: "forbidden",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
