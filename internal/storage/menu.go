// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/omnicore/restaurant-service/internal/db"
	"github.com/omnicore/restaurant-service/internal/types"
)

const categoryColumns = "id, tenant_id, name, description, status, display_order, created_at, updated_at"

func (s *Storage) CreateCategory(ctx context.Context, c *types.Category) (*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateCategory")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	var created types.Category
	err = s.db.Statement(ctx).
		Insert("categories").
		Columns("id", "tenant_id", "name", "description", "status", "display_order").
		Values(id, c.TenantID, c.Name, c.Description, c.Status, c.DisplayOrder).
		Suffix("RETURNING " + categoryColumns).
		QueryRowContext(ctx).
		Scan(&created.ID, &created.TenantID, &created.Name, &created.Description, &created.Status, &created.DisplayOrder, &created.CreatedAt, &created.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", classify(err))
	}

	return &created, nil
}

func (s *Storage) GetCategory(ctx context.Context, tenantID, id string) (*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetCategory")
	defer span.End()

	var c types.Category
	err := s.db.Statement(ctx).
		Select(categoryColumns).
		From("categories").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		QueryRowContext(ctx).
		Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.Status, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", classify(err))
	}

	return &c, nil
}

func (s *Storage) ListCategories(ctx context.Context, tenantID string) ([]*types.Category, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListCategories")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(categoryColumns).
		From("categories").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("display_order", "name").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", classify(err))
	}
	defer rows.Close()

	var categories []*types.Category
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.TenantID, &c.Name, &c.Description, &c.Status, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return categories, nil
}

func (s *Storage) UpdateCategory(ctx context.Context, c *types.Category) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateCategory")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("categories").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("status", c.Status).
		Set("display_order", c.DisplayOrder).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"tenant_id": c.TenantID, "id": c.ID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", classify(err))
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

func (s *Storage) DeleteCategory(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteCategory")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("categories").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", classify(err))
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

const menuItemColumns = "id, tenant_id, category_id, name, description, price, cost, active, featured, vegetarian, vegan, gluten_free, prep_minutes, calories, display_order, created_at, updated_at"

func scanMenuItem(row sq.RowScanner) (*types.MenuItem, error) {
	var m types.MenuItem
	err := row.Scan(&m.ID, &m.TenantID, &m.CategoryID, &m.Name, &m.Description, &m.Price, &m.Cost, &m.Active, &m.Featured, &m.Vegetarian, &m.Vegan, &m.GlutenFree, &m.PrepMinutes, &m.Calories, &m.DisplayOrder, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Storage) CreateMenuItem(ctx context.Context, m *types.MenuItem) (*types.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateMenuItem")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	created, err := scanMenuItem(s.db.Statement(ctx).
		Insert("menu_items").
		Columns("id", "tenant_id", "category_id", "name", "description", "price", "cost", "active", "featured", "vegetarian", "vegan", "gluten_free", "prep_minutes", "calories", "display_order").
		Values(id, m.TenantID, m.CategoryID, m.Name, m.Description, m.Price, m.Cost, m.Active, m.Featured, m.Vegetarian, m.Vegan, m.GlutenFree, m.PrepMinutes, m.Calories, m.DisplayOrder).
		Suffix("RETURNING " + menuItemColumns).
		QueryRowContext(ctx))

	if err != nil {
		return nil, fmt.Errorf("failed to insert menu item: %w", classify(err))
	}

	return created, nil
}

func (s *Storage) GetMenuItem(ctx context.Context, tenantID, id string) (*types.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMenuItem")
	defer span.End()

	m, err := scanMenuItem(s.db.Statement(ctx).
		Select(menuItemColumns).
		From("menu_items").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		QueryRowContext(ctx))

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", classify(err))
	}

	return m, nil
}

// ListMenuItems returns a page of the tenant's items, optionally filtered
// by category.
func (s *Storage) ListMenuItems(ctx context.Context, tenantID, categoryID string, page, size int64) ([]*types.MenuItem, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMenuItems")
	defer span.End()

	pageSize := db.PageSize(size)

	query := s.db.Statement(ctx).
		Select(menuItemColumns).
		From("menu_items").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("display_order", "name").
		Offset(db.Offset(page, pageSize)).
		Limit(pageSize)

	if categoryID != "" {
		query = query.Where(sq.Eq{"category_id": categoryID})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", classify(err))
	}
	defer rows.Close()

	var items []*types.MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

func (s *Storage) UpdateMenuItem(ctx context.Context, m *types.MenuItem) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMenuItem")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("menu_items").
		SetMap(map[string]interface{}{
			"category_id":   m.CategoryID,
			"name":          m.Name,
			"description":   m.Description,
			"price":         m.Price,
			"cost":          m.Cost,
			"active":        m.Active,
			"featured":      m.Featured,
			"vegetarian":    m.Vegetarian,
			"vegan":         m.Vegan,
			"gluten_free":   m.GlutenFree,
			"prep_minutes":  m.PrepMinutes,
			"calories":      m.Calories,
			"display_order": m.DisplayOrder,
			"updated_at":    sq.Expr("now()"),
		}).
		Where(sq.Eq{"tenant_id": m.TenantID, "id": m.ID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", classify(err))
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

func (s *Storage) DeleteMenuItem(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteMenuItem")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("menu_items").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", classify(err))
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
