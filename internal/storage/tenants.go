// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/omnicore/restaurant-service/internal/types"
)

const tenantColumns = "id, name, slug, owner_id, active, address, city, country, phone, email, tax_id, created_at, updated_at"

func scanTenant(row sq.RowScanner) (*types.Tenant, error) {
	var t types.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.OwnerID, &t.Active, &t.Address, &t.City, &t.Country, &t.Phone, &t.Email, &t.TaxID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	created, err := scanTenant(s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "name", "slug", "owner_id", "active", "address", "city", "country", "phone", "email", "tax_id").
		Values(id, t.Name, t.Slug, t.OwnerID, true, t.Address, t.City, t.Country, t.Phone, t.Email, t.TaxID).
		Suffix("RETURNING " + tenantColumns).
		QueryRowContext(ctx))

	if err != nil {
		return nil, fmt.Errorf("failed to insert tenant: %w", classify(err))
	}

	return created, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	t, err := scanTenant(s.db.Statement(ctx).
		Select(tenantColumns).
		From("tenants").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx))

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", classify(err))
	}

	return t, nil
}

// GetActiveTenantByID is the lookup for request scoping: a disabled tenant
// reads as not found so it can never be bound to a request.
func (s *Storage) GetActiveTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveTenantByID")
	defer span.End()

	t, err := scanTenant(s.db.Statement(ctx).
		Select(tenantColumns).
		From("tenants").
		Where(sq.Eq{"id": id, "active": true}).
		QueryRowContext(ctx))

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active tenant: %w", classify(err))
	}

	return t, nil
}

// tenantSelectorMatch builds the lookup predicate for a tenant selector.
// The id column is uuid typed and rejects any other bind value, so the
// selector is only compared against it when it parses as a UUID; anything
// else can only be a slug.
func tenantSelectorMatch(selector string) sq.Sqlizer {
	if _, err := uuid.Parse(selector); err == nil {
		return sq.Or{sq.Eq{"id": selector}, sq.Eq{"slug": selector}}
	}
	return sq.Eq{"slug": selector}
}

// GetActiveTenantBySelector looks up an active tenant by ID or slug, the
// single header convention the API exposes.
func (s *Storage) GetActiveTenantBySelector(ctx context.Context, selector string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveTenantBySelector")
	defer span.End()

	t, err := scanTenant(s.db.Statement(ctx).
		Select(tenantColumns).
		From("tenants").
		Where(sq.And{
			sq.Eq{"active": true},
			tenantSelectorMatch(selector),
		}).
		QueryRowContext(ctx))

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant by selector: %w", classify(err))
	}

	return t, nil
}

func (s *Storage) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(tenantColumns).
		From("tenants").
		OrderBy("created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", classify(err))
	}
	defer rows.Close()

	var tenants []*types.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}

	return tenants, nil
}

// ListActiveTenantsByUserID returns the active tenants the user has an
// active membership in.
func (s *Storage) ListActiveTenantsByUserID(ctx context.Context, userID string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListActiveTenantsByUserID")
	defer span.End()

	cols := "t.id, t.name, t.slug, t.owner_id, t.active, t.address, t.city, t.country, t.phone, t.email, t.tax_id, t.created_at, t.updated_at"
	rows, err := s.db.Statement(ctx).
		Select(cols).
		From("tenants t").
		Join("memberships m ON t.id = m.tenant_id").
		Where(sq.Eq{"m.user_id": userID, "m.active": true, "t.active": true}).
		OrderBy("t.created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", classify(err))
	}
	defer rows.Close()

	var tenants []*types.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tenants, nil
}

// UpdateTenant updates fields specified in paths, following PATCH semantics.
func (s *Storage) UpdateTenant(ctx context.Context, tenant *types.Tenant, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTenant")
	defer span.End()

	if len(paths) == 0 {
		return nil
	}

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updateMap["name"] = tenant.Name
		case "address":
			updateMap["address"] = tenant.Address
		case "city":
			updateMap["city"] = tenant.City
		case "country":
			updateMap["country"] = tenant.Country
		case "phone":
			updateMap["phone"] = tenant.Phone
		case "email":
			updateMap["email"] = tenant.Email
		case "tax_id":
			updateMap["tax_id"] = tenant.TaxID
		}
	}

	if len(updateMap) == 0 {
		return nil
	}
	updateMap["updated_at"] = sq.Expr("now()")

	res, err := s.db.Statement(ctx).
		Update("tenants").
		SetMap(updateMap).
		Where(sq.Eq{"id": tenant.ID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", classify(err))
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

func (s *Storage) SetTenantStatus(ctx context.Context, id string, active bool) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetTenantStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("tenants").
		Set("active", active).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to set tenant status: %w", classify(err))
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
