// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/omnicore/restaurant-service/internal/storage"
)

// ErrorResponse is the standard json body for errors across the whole API.
type ErrorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// WriteJSON writes v as a json response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error onto the http status taxonomy and writes
// the standard error body. Storage sentinels carry the mapping, everything
// unrecognized is an internal error so no driver detail leaks to callers.
func WriteError(w http.ResponseWriter, err error) error {
	status, message := statusFromError(err)
	return WriteJSON(w, status, &ErrorResponse{Status: status, Message: message})
}

// WriteValidationError reports request body validation failures with the
// offending field names.
func WriteValidationError(w http.ResponseWriter, err error) error {
	fields := make([]string, 0)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
	}
	return WriteJSON(w, http.StatusBadRequest, &ErrorResponse{
		Status:  http.StatusBadRequest,
		Message: "validation failed",
		Fields:  fields,
	})
}

func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, storage.ErrDuplicateKey):
		return http.StatusConflict, "resource already exists"
	case errors.Is(err, storage.ErrForeignKeyViolation):
		return http.StatusUnprocessableEntity, "referenced resource does not exist"
	case errors.Is(err, storage.ErrTransient):
		return http.StatusServiceUnavailable, "service unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
