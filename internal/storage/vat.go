// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/omnicore/restaurant-service/internal/types"
)

const vatColumns = "id, tenant_id, name, rate, description, active, created_at, updated_at"

func scanVat(row sq.RowScanner) (*types.VatTax, error) {
	var v types.VatTax
	err := row.Scan(&v.ID, &v.TenantID, &v.Name, &v.Rate, &v.Description, &v.Active, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Storage) CreateVatTax(ctx context.Context, v *types.VatTax) (*types.VatTax, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateVatTax")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	created, err := scanVat(s.db.Statement(ctx).
		Insert("vat_taxes").
		Columns("id", "tenant_id", "name", "rate", "description", "active").
		Values(id, v.TenantID, v.Name, v.Rate, v.Description, v.Active).
		Suffix("RETURNING " + vatColumns).
		QueryRowContext(ctx))

	if err != nil {
		return nil, fmt.Errorf("failed to insert vat tax: %w", classify(err))
	}

	return created, nil
}

func (s *Storage) GetVatTax(ctx context.Context, tenantID, id string) (*types.VatTax, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetVatTax")
	defer span.End()

	v, err := scanVat(s.db.Statement(ctx).
		Select(vatColumns).
		From("vat_taxes").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		QueryRowContext(ctx))

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vat tax: %w", classify(err))
	}

	return v, nil
}

func (s *Storage) ListVatTaxes(ctx context.Context, tenantID string) ([]*types.VatTax, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListVatTaxes")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(vatColumns).
		From("vat_taxes").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("name").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vat taxes: %w", classify(err))
	}
	defer rows.Close()

	var taxes []*types.VatTax
	for rows.Next() {
		v, err := scanVat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vat tax: %w", err)
		}
		taxes = append(taxes, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return taxes, nil
}

func (s *Storage) UpdateVatTax(ctx context.Context, v *types.VatTax) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateVatTax")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("vat_taxes").
		SetMap(map[string]interface{}{
			"name":        v.Name,
			"rate":        v.Rate,
			"description": v.Description,
			"active":      v.Active,
			"updated_at":  sq.Expr("now()"),
		}).
		Where(sq.Eq{"tenant_id": v.TenantID, "id": v.ID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update vat tax: %w", classify(err))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) DeleteVatTax(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteVatTax")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("vat_taxes").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete vat tax: %w", classify(err))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
