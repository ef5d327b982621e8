// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package menu

import (
	"time"

	"github.com/omnicore/restaurant-service/internal/types"
)

type CategoryRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Description  string `json:"description"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
}

type CategoryResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ItemRequest struct {
	CategoryID   *string `json:"category_id"`
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	Description  string  `json:"description"`
	Price        string  `json:"price" validate:"required,numeric"`
	Cost         string  `json:"cost" validate:"omitempty,numeric"`
	Active       bool    `json:"active"`
	Featured     bool    `json:"featured"`
	Vegetarian   bool    `json:"vegetarian"`
	Vegan        bool    `json:"vegan"`
	GlutenFree   bool    `json:"gluten_free"`
	PrepMinutes  int     `json:"prep_minutes" validate:"gte=0"`
	Calories     int     `json:"calories" validate:"gte=0"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
}

type ItemResponse struct {
	ID           string    `json:"id"`
	CategoryID   *string   `json:"category_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        string    `json:"price"`
	Cost         string    `json:"cost"`
	Active       bool      `json:"active"`
	Featured     bool      `json:"featured"`
	Vegetarian   bool      `json:"vegetarian"`
	Vegan        bool      `json:"vegan"`
	GlutenFree   bool      `json:"gluten_free"`
	PrepMinutes  int       `json:"prep_minutes"`
	Calories     int       `json:"calories"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r *CategoryRequest) toCategory(tenantID, id string) *types.Category {
	status := r.Status
	if status == "" {
		status = "active"
	}
	return &types.Category{
		ID:           id,
		TenantID:     tenantID,
		Name:         r.Name,
		Description:  r.Description,
		Status:       status,
		DisplayOrder: r.DisplayOrder,
	}
}

func (r *ItemRequest) toItem(tenantID, id string) *types.MenuItem {
	return &types.MenuItem{
		ID:           id,
		TenantID:     tenantID,
		CategoryID:   r.CategoryID,
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Cost:         r.Cost,
		Active:       r.Active,
		Featured:     r.Featured,
		Vegetarian:   r.Vegetarian,
		Vegan:        r.Vegan,
		GlutenFree:   r.GlutenFree,
		PrepMinutes:  r.PrepMinutes,
		Calories:     r.Calories,
		DisplayOrder: r.DisplayOrder,
	}
}

func toCategoryResponse(c *types.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		Status:       c.Status,
		DisplayOrder: c.DisplayOrder,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toItemResponse(m *types.MenuItem) *ItemResponse {
	return &ItemResponse{
		ID:           m.ID,
		CategoryID:   m.CategoryID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Cost:         m.Cost,
		Active:       m.Active,
		Featured:     m.Featured,
		Vegetarian:   m.Vegetarian,
		Vegan:        m.Vegan,
		GlutenFree:   m.GlutenFree,
		PrepMinutes:  m.PrepMinutes,
		Calories:     m.Calories,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
