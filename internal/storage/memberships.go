// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/omnicore/restaurant-service/internal/types"
)

const membershipColumns = "id, tenant_id, user_id, role, active, created_at"

// ListActiveMembershipsByUserID returns only memberships with active=true,
// in active tenants. This is the set the tenant resolver works from.
func (s *Storage) ListActiveMembershipsByUserID(ctx context.Context, userID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListActiveMembershipsByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("m.id", "m.tenant_id", "m.user_id", "m.role", "m.active", "m.created_at").
		From("memberships m").
		Join("tenants t ON t.id = m.tenant_id").
		Where(sq.Eq{"m.user_id": userID, "m.active": true, "t.active": true}).
		OrderBy("m.created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", classify(err))
	}
	defer rows.Close()

	var memberships []*types.Membership
	for rows.Next() {
		var m types.Membership
		if err := rows.Scan(&m.ID, &m.TenantID, &m.UserID, &m.Role, &m.Active, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return memberships, nil
}

// GetActiveMembership returns the single active membership for the
// (tenant, user) pair, or ErrNotFound.
func (s *Storage) GetActiveMembership(ctx context.Context, tenantID, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveMembership")
	defer span.End()

	var m types.Membership
	err := s.db.Statement(ctx).
		Select(membershipColumns).
		From("memberships").
		Where(sq.Eq{"tenant_id": tenantID, "user_id": userID, "active": true}).
		QueryRowContext(ctx).
		Scan(&m.ID, &m.TenantID, &m.UserID, &m.Role, &m.Active, &m.CreatedAt)

	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", classify(err))
	}

	return &m, nil
}

func (s *Storage) AddMember(ctx context.Context, tenantID, userID, role string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	id, err := newID()
	if err != nil {
		return "", err
	}

	_, err = s.db.Statement(ctx).
		Insert("memberships").
		Columns("id", "tenant_id", "user_id", "role", "active").
		Values(id, tenantID, userID, role, true).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return "", ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return "", ErrForeignKeyViolation
		}
		return "", fmt.Errorf("failed to add member: %w", classify(err))
	}

	return id, nil
}

func (s *Storage) UpdateMemberRole(ctx context.Context, tenantID, userID, role string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMemberRole")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("memberships").
		Set("role", role).
		Where(sq.Eq{"tenant_id": tenantID, "user_id": userID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update member role: %w", classify(err))
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

func (s *Storage) SetMemberStatus(ctx context.Context, tenantID, userID string, active bool) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetMemberStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("memberships").
		Set("active", active).
		Where(sq.Eq{"tenant_id": tenantID, "user_id": userID}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to set member status: %w", classify(err))
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

// ListMembersByTenantID joins memberships with their users for the tenant
// administration views.
func (s *Storage) ListMembersByTenantID(ctx context.Context, tenantID string) ([]*types.TenantUser, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembersByTenantID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("u.id", "u.email", "u.full_name", "m.role", "m.active").
		From("memberships m").
		Join("users u ON u.id = m.user_id").
		Where(sq.Eq{"m.tenant_id": tenantID}).
		OrderBy("m.created_at").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", classify(err))
	}
	defer rows.Close()

	var members []*types.TenantUser
	for rows.Next() {
		var tu types.TenantUser
		if err := rows.Scan(&tu.UserID, &tu.Email, &tu.FullName, &tu.Role, &tu.Active); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &tu)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}
