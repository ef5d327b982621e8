// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package vat

import (
	"context"

	"github.com/omnicore/restaurant-service/internal/types"
)

type ServiceInterface interface {
	CreateTax(ctx context.Context, v *types.VatTax) (*types.VatTax, error)
	GetTax(ctx context.Context, tenantID, id string) (*types.VatTax, error)
	ListTaxes(ctx context.Context, tenantID string) ([]*types.VatTax, error)
	UpdateTax(ctx context.Context, v *types.VatTax) (*types.VatTax, error)
	DeleteTax(ctx context.Context, tenantID, id string) error
}

type StorageInterface interface {
	CreateVatTax(ctx context.Context, v *types.VatTax) (*types.VatTax, error)
	GetVatTax(ctx context.Context, tenantID, id string) (*types.VatTax, error)
	ListVatTaxes(ctx context.Context, tenantID string) ([]*types.VatTax, error)
	UpdateVatTax(ctx context.Context, v *types.VatTax) error
	DeleteVatTax(ctx context.Context, tenantID, id string) error
}
