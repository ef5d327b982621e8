// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package menu

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/omnicore/restaurant-service/internal/authorization"
	httpTypes "github.com/omnicore/restaurant-service/internal/http/types"
	"github.com/omnicore/restaurant-service/internal/logging"
	"github.com/omnicore/restaurant-service/internal/monitoring"
	"github.com/omnicore/restaurant-service/internal/tracing"
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

// RegisterEndpoints mounts the menu routes: reads for any member, writes
// for managers and above.
func (a *API) RegisterEndpoints(mux chi.Router, tier authorization.TierMiddlewareFunc) {
	mux.Group(func(r chi.Router) {
		r.Use(tier(authorization.TierMember))
		r.Get("/api/v1/menu/categories", a.listCategories)
		r.Get("/api/v1/menu/categories/{categoryID}", a.getCategory)
		r.Get("/api/v1/menu/items", a.listItems)
		r.Get("/api/v1/menu/items/{itemID}", a.getItem)
	})
	mux.Group(func(r chi.Router) {
		r.Use(tier(authorization.TierManager))
		r.Post("/api/v1/menu/categories", a.createCategory)
		r.Put("/api/v1/menu/categories/{categoryID}", a.updateCategory)
		r.Delete("/api/v1/menu/categories/{categoryID}", a.deleteCategory)
		r.Post("/api/v1/menu/items", a.createItem)
		r.Put("/api/v1/menu/items/{itemID}", a.updateItem)
		r.Delete("/api/v1/menu/items/{itemID}", a.deleteItem)
	})
}

func (a *API) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "menu.API.listCategories")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	categories, err := a.service.ListCategories(ctx, rc.Tenant.ID)
	if err != nil {
		a.logger.Errorf("failed to list categories: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	out := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = toCategoryResponse(c)
	}
	_ = httpTypes.WriteJSON(w, http.StatusOK, out)
}

func (a *API) getCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "menu.API.getCategory")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	category, err := a.service.GetCategory(ctx, rc.Tenant.ID, chi.URLParam(r, "categoryID"))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (a *API) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "menu.API.createCategory")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decodeCategory(w, r)
	if !ok {
		return
	}

	category, err := a.service.CreateCategory(ctx, req.toCategory(rc.Tenant.ID, ""))
	if err != nil {
		a.logger.Errorf("failed to create category: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusCreated, toCategoryResponse(category))
}

func (a *API) updateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "menu.API.updateCategory")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decodeCategory(w, r)
	if !ok {
		return
	}

	category, err := a.service.UpdateCategory(ctx, req.toCategory(rc.Tenant.ID, chi.URLParam(r, "categoryID")))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toCategoryResponse(category))
}

func (a *API) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "menu.API.deleteCategory")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	if err := a.service.DeleteCategory(ctx, rc.Tenant.ID, chi.URLParam(r, "categoryID")); err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listItems(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "menu.API.listItems")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	query := r.URL.Query()
	page, _ := strconv.ParseInt(query.Get("page"), 10, 64)
	size, _ := strconv.ParseInt(query.Get("size"), 10, 64)

	items, err := a.service.ListItems(ctx, rc.Tenant.ID, query.Get("category_id"), page, size)
	if err != nil {
		a.logger.Errorf("failed to list items: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	out := make([]*ItemResponse, len(items))
	for i, m := range items {
		out[i] = toItemResponse(m)
	}
	_ = httpTypes.WriteJSON(w, http.StatusOK, out)
}

func (a *API) getItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "menu.API.getItem")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	item, err := a.service.GetItem(ctx, rc.Tenant.ID, chi.URLParam(r, "itemID"))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toItemResponse(item))
}

func (a *API) createItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "menu.API.createItem")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decodeItem(w, r)
	if !ok {
		return
	}

	item, err := a.service.CreateItem(ctx, req.toItem(rc.Tenant.ID, ""))
	if err != nil {
		a.logger.Errorf("failed to create item: %v", err)
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusCreated, toItemResponse(item))
}

func (a *API) updateItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "menu.API.updateItem")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	req, ok := a.decodeItem(w, r)
	if !ok {
		return
	}

	item, err := a.service.UpdateItem(ctx, req.toItem(rc.Tenant.ID, chi.URLParam(r, "itemID")))
	if err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	_ = httpTypes.WriteJSON(w, http.StatusOK, toItemResponse(item))
}

func (a *API) deleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "menu.API.deleteItem")
	defer span.End()

	rc, _ := tenancy.GetRequestContext(ctx)

	if err := a.service.DeleteItem(ctx, rc.Tenant.ID, chi.URLParam(r, "itemID")); err != nil {
		_ = httpTypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) decodeCategory(w http.ResponseWriter, r *http.Request) (*CategoryRequest, bool) {
	var req CategoryRequest
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

func (a *API) decodeItem(w http.ResponseWriter, r *http.Request) (*ItemRequest, bool) {
	var req ItemRequest
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
