// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"time"

	"github.com/omnicore/restaurant-service/internal/types"
)

type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Active    bool      `json:"active"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	TaxID     string    `json:"tax_id"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateTenantRequest follows PATCH semantics: only the fields present in
// the body are written.
type UpdateTenantRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Country *string `json:"country"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	TaxID   *string `json:"tax_id"`
}

// Fields turns the present pointers into a tenant value plus update paths.
func (r *UpdateTenantRequest) Fields(tenantID string) (*types.Tenant, []string) {
	t := &types.Tenant{ID: tenantID}
	paths := make([]string, 0)

	set := func(path string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			paths = append(paths, path)
		}
	}
	set("name", &t.Name, r.Name)
	set("address", &t.Address, r.Address)
	set("city", &t.City, r.City)
	set("country", &t.Country, r.Country)
	set("phone", &t.Phone, r.Phone)
	set("email", &t.Email, r.Email)
	set("tax_id", &t.TaxID, r.TaxID)

	return t, paths
}

type AddUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type SetUserStatusRequest struct {
	Active bool `json:"active"`
}

type TenantUserResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

type CreateTenantRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Slug       string `json:"slug" validate:"required,min=2,max=64,lowercase"`
	OwnerEmail string `json:"owner_email" validate:"required,email"`
}

type SetTenantStatusRequest struct {
	Active bool `json:"active"`
}

func toTenantResponse(t *types.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Active:    t.Active,
		Address:   t.Address,
		City:      t.City,
		Country:   t.Country,
		Phone:     t.Phone,
		Email:     t.Email,
		TaxID:     t.TaxID,
		CreatedAt: t.CreatedAt,
	}
}

func toTenantResponses(tenants []*types.Tenant) []*TenantResponse {
	out := make([]*TenantResponse, len(tenants))
	for i, t := range tenants {
		out[i] = toTenantResponse(t)
	}
	return out
}

func toTenantUserResponses(users []*types.TenantUser) []*TenantUserResponse {
	out := make([]*TenantUserResponse, len(users))
	for i, u := range users {
		out[i] = &TenantUserResponse{
			UserID:   u.UserID,
			Email:    u.Email,
			FullName: u.FullName,
			Role:     u.Role,
			Active:   u.Active,
		}
	}
	return out
}
