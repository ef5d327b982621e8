// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/omnicore/restaurant-service/internal/types"
)

const tableColumns = "id, tenant_id, number, name, capacity, status, area, notes, active, created_at, updated_at"

func scanTable(row sq.RowScanner) (*types.Table, error) {
	var t types.Table
	err := row.Scan(&t.ID, &t.TenantID, &t.Number, &t.Name, &t.Capacity, &t.Status, &t.Area, &t.Notes, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) CreateTable(ctx context.Context, t *types.Table) (*types.Table, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTable")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	created, err := scanTable(s.db.Statement(ctx).
		Insert("restaurant_tables").
		Columns("id", "tenant_id", "number", "name", "capacity", "status", "area", "notes", "active").
		Values(id, t.TenantID, t.Number, t.Name, t.Capacity, t.Status, t.Area, t.Notes, t.Active).
		Suffix("RETURNING " + tableColumns).
		QueryRowContext(ctx))

	if err != nil {
		return nil, fmt.Errorf("failed to insert table: %w", classify(err))
	}

	return created, nil
}

func (s *Storage) GetTable(ctx context.Context, tenantID, id string) (*types.Table, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTable")
	defer span.End()

	t, err := scanTable(s.db.Statement(ctx).
		Select(tableColumns).
		From("restaurant_tables").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		QueryRowContext(ctx))

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get table: %w", classify(err))
	}

	return t, nil
}

func (s *Storage) ListTables(ctx context.Context, tenantID string) ([]*types.Table, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTables")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(tableColumns).
		From("restaurant_tables").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("number").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", classify(err))
	}
	defer rows.Close()

	var tables []*types.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tables, nil
}

func (s *Storage) UpdateTable(ctx context.Context, t *types.Table) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTable")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("restaurant_tables").
		SetMap(map[string]interface{}{
			"number":     t.Number,
			"name":       t.Name,
			"capacity":   t.Capacity,
			"status":     t.Status,
			"area":       t.Area,
			"notes":      t.Notes,
			"active":     t.Active,
			"updated_at": sq.Expr("now()"),
		}).
		Where(sq.Eq{"tenant_id": t.TenantID, "id": t.ID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update table: %w", classify(err))
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

func (s *Storage) DeleteTable(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteTable")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("restaurant_tables").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", classify(err))
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
