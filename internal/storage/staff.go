// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/omnicore/restaurant-service/internal/types"
)

const staffColumns = "id, tenant_id, name, position, email, phone, user_id, active, created_at, updated_at"

func scanStaff(row sq.RowScanner) (*types.StaffProfile, error) {
	var p types.StaffProfile
	err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.Position, &p.Email, &p.Phone, &p.UserID, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) CreateStaffProfile(ctx context.Context, p *types.StaffProfile) (*types.StaffProfile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateStaffProfile")
	defer span.End()

	id, err := newID()
	if err != nil {
		return nil, err
	}

	created, err := scanStaff(s.db.Statement(ctx).
		Insert("staff_profiles").
		Columns("id", "tenant_id", "name", "position", "email", "phone", "user_id", "active").
		Values(id, p.TenantID, p.Name, p.Position, p.Email, p.Phone, p.UserID, true).
		Suffix("RETURNING " + staffColumns).
		QueryRowContext(ctx))

	if err != nil {
		return nil, fmt.Errorf("failed to insert staff profile: %w", classify(err))
	}

	return created, nil
}

func (s *Storage) GetStaffProfile(ctx context.Context, tenantID, id string) (*types.StaffProfile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetStaffProfile")
	defer span.End()

	p, err := scanStaff(s.db.Statement(ctx).
		Select(staffColumns).
		From("staff_profiles").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		QueryRowContext(ctx))

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff profile: %w", classify(err))
	}

	return p, nil
}

func (s *Storage) ListStaffProfiles(ctx context.Context, tenantID string) ([]*types.StaffProfile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListStaffProfiles")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(staffColumns).
		From("staff_profiles").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("name").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff profiles: %w", classify(err))
	}
	defer rows.Close()

	var profiles []*types.StaffProfile
	for rows.Next() {
		p, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return profiles, nil
}

func (s *Storage) UpdateStaffProfile(ctx context.Context, p *types.StaffProfile) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateStaffProfile")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("staff_profiles").
		SetMap(map[string]interface{}{
			"name":       p.Name,
			"position":   p.Position,
			"email":      p.Email,
			"phone":      p.Phone,
			"user_id":    p.UserID,
			"active":     p.Active,
			"updated_at": sq.Expr("now()"),
		}).
		Where(sq.Eq{"tenant_id": p.TenantID, "id": p.ID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update staff profile: %w", classify(err))
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

func (s *Storage) DeleteStaffProfile(ctx context.Context, tenantID, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteStaffProfile")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("staff_profiles").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete staff profile: %w", classify(err))
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
