// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package auth

import (
	"time"

	"github.com/omnicore/restaurant-service/internal/types"
	"github.com/omnicore/restaurant-service/pkg/authentication"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type TenantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type MembershipResponse struct {
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
}

// Session is what a successful registration or login returns: the user, a
// fresh token pair and the tenants the user can select.
type Session struct {
	User    *types.User
	Tokens  *authentication.TokenPair
	Tenants []*types.Tenant
}

type SessionResponse struct {
	User    *UserResponse              `json:"user"`
	Tokens  *authentication.TokenPair  `json:"tokens"`
	Tenants []*TenantResponse          `json:"tenants"`
}

// Profile is the authenticated user plus its active memberships.
type Profile struct {
	User        *types.User
	Memberships []*types.Membership
	Tenants     []*types.Tenant
}

type ProfileResponse struct {
	User        *UserResponse         `json:"user"`
	Memberships []*MembershipResponse `json:"memberships"`
	Tenants     []*TenantResponse     `json:"tenants"`
}

func toUserResponse(u *types.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

func toTenantResponses(tenants []*types.Tenant) []*TenantResponse {
	out := make([]*TenantResponse, len(tenants))
	for i, t := range tenants {
		out[i] = &TenantResponse{ID: t.ID, Name: t.Name, Slug: t.Slug}
	}
	return out
}
