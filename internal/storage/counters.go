// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/omnicore/restaurant-service/internal/types"
)

const counterColumns = "id, tenant_id, name, description, location, status, created_at, updated_at"

func scanCounter(row sq.RowScanner) (*types.Counter, error) {
	var c types.Counter
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.Location, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) CreateCounter(ctx context.Context, c *types.Counter) (*types.Counter, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCounter")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	created, err := scanCounter(s.db.Statement(ctx).
		Insert("counters").
		Columns("id", "tenant_id", "name", "description", "location", "status").
		Values(id, c.TenantID, c.Name, c.Description, c.Location, c.Status).
		Suffix("RETURNING " + counterColumns).
		QueryRowContext(ctx))

	if err != nil {
		return nil, fmt.Errorf("failed to insert counter: %w", classify(err))
	}

	return created, nil
}

func (s *Storage) GetCounter(ctx context.Context, tenantID, id string) (*types.Counter, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCounter")
	defer span.End()

	c, err := scanCounter(s.db.Statement(ctx).
		Select(counterColumns).
		From("counters").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		QueryRowContext(ctx))

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get counter: %w", classify(err))
	}

	items, err := s.ListCounterItemIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	c.ItemIDs = items

	return c, nil
}

func (s *Storage) ListCounters(ctx context.Context, tenantID string) ([]*types.Counter, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCounters")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(counterColumns).
		From("counters").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("name").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list counters: %w", classify(err))
	}
	defer rows.Close()

	var counters []*types.Counter
	for rows.Next() {
		c, err := scanCounter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		counters = append(counters, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counters, nil
}

func (s *Storage) UpdateCounter(ctx context.Context, c *types.Counter) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateCounter")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("counters").
		SetMap(map[string]interface{}{
			"name":        c.Name,
			"description": c.Description,
			"location":    c.Location,
			"status":      c.Status,
			"updated_at":  sq.Expr("now()"),
		}).
		Where(sq.Eq{"tenant_id": c.TenantID, "id": c.ID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update counter: %w", classify(err))
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

func (s *Storage) DeleteCounter(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteCounter")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("counters").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete counter: %w", classify(err))
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

func (s *Storage) ListCounterItemIDs(ctx context.Context, counterID string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCounterItemIDs")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("item_id").
		From("counter_items").
		Where(sq.Eq{"counter_id": counterID}).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list counter items: %w", classify(err))
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan counter item: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return ids, nil
}

// SetCounterItems replaces the counter's menu item assignment. Callers run
// this under the request transaction so the swap is atomic.
func (s *Storage) SetCounterItems(ctx context.Context, counterID string, itemIDs []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetCounterItems")
	defer span.End()

	if _, err := s.db.Statement(ctx).
		Delete("counter_items").
		Where(sq.Eq{"counter_id": counterID}).
		ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to clear counter items: %w", classify(err))
	}

	if len(itemIDs) == 0 {
		return nil
	}

	insert := s.db.Statement(ctx).
		Insert("counter_items").
		Columns("counter_id", "item_id")
	for _, itemID := range itemIDs {
		insert = insert.Values(counterID, itemID)
	}

	if _, err := insert.ExecContext(ctx); err != nil {
		if IsForeignKeyViolation(err) {
			return ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to assign counter items: %w", classify(err))
	}

	return nil
}
