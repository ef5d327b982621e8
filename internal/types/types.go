// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Tenant struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	OwnerID   string    `db:"owner_id"`
	Active    bool      `db:"active"`
	Address   string    `db:"address"`
	City      string    `db:"city"`
	Country   string    `db:"country"`
	Phone     string    `db:"phone"`
	Email     string    `db:"email"`
	TaxID     string    `db:"tax_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Membership struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
}

// TenantUser is the API projection of a membership joined with its user.
type TenantUser struct {
	UserID   string
	Email    string
	FullName string
	Role     string
	Active   bool
}

type RevokedToken struct {
	JTI       string    `db:"jti"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	RevokedAt time.Time `db:"revoked_at"`
}

type Category struct {
	ID           string    `db:"id"`
	TenantID     string    `db:"tenant_id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Status       string    `db:"status"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type MenuItem struct {
	ID           string    `db:"id"`
	TenantID     string    `db:"tenant_id"`
	CategoryID   *string   `db:"category_id"`
	Name         string    `db:"name"`
	Description  string    `db:"description"`
	Price        string    `db:"price"`
	Cost         string    `db:"cost"`
	Active       bool      `db:"active"`
	Featured     bool      `db:"featured"`
	Vegetarian   bool      `db:"vegetarian"`
	Vegan        bool      `db:"vegan"`
	GlutenFree   bool      `db:"gluten_free"`
	PrepMinutes  int       `db:"prep_minutes"`
	Calories     int       `db:"calories"`
	DisplayOrder int       `db:"display_order"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Table struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	Number    string    `db:"number"`
	Name      string    `db:"name"`
	Capacity  int       `db:"capacity"`
	Status    string    `db:"status"`
	Area      string    `db:"area"`
	Notes     string    `db:"notes"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Counter struct {
	ID          string    `db:"id"`
	TenantID    string    `db:"tenant_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Location    string    `db:"location"`
	Status      string    `db:"status"`
	ItemIDs     []string  `db:"-"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type StaffProfile struct {
	ID        string    `db:"id"`
	TenantID  string    `db:"tenant_id"`
	Name      string    `db:"name"`
	Position  string    `db:"position"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	UserID    *string   `db:"user_id"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type VatTax struct {
	ID          string    `db:"id"`
	TenantID    string    `db:"tenant_id"`
	Name        string    `db:"name"`
	Rate        string    `db:"rate"`
	Description string    `db:"description"`
	Active      bool      `db:"active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
