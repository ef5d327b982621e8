// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import "net/http"

// TierMiddlewareFunc builds an http middleware enforcing a role tier. The
// web layer provides the implementation; handler packages use it to declare
// the tier each route group needs.
type TierMiddlewareFunc func(Tier) func(http.Handler) http.Handler

// Membership roles, ordered by privilege. The three staff-tier roles are
// peers: none of them outranks another.
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
	RoleWaiter  = "waiter"
	RoleKitchen = "kitchen"
)

// Tier is a named set of roles treated as equally-or-more privileged for an
// authorization check.
type Tier string

const (
	TierOwner   Tier = "owner"
	TierAdmin   Tier = "admin-or-above"
	TierManager Tier = "manager-or-above"
	TierMember  Tier = "any-member"
)

var tierRoles = map[Tier]map[string]bool{
	TierOwner: {
		RoleOwner: true,
	},
	TierAdmin: {
		RoleOwner: true,
		RoleAdmin: true,
	},
	TierManager: {
		RoleOwner:   true,
		RoleAdmin:   true,
		RoleManager: true,
	},
	TierMember: {
		RoleOwner:   true,
		RoleAdmin:   true,
		RoleManager: true,
		RoleCashier: true,
		RoleWaiter:  true,
		RoleKitchen: true,
	},
}

// ValidRole reports whether the role names one of the fixed membership roles.
func ValidRole(role string) bool {
	return tierRoles[TierMember][role]
}

// RoleInTier reports whether the role satisfies the tier.
func RoleInTier(role string, tier Tier) bool {
	roles, ok := tierRoles[tier]
	if !ok {
		return false
	}
	return roles[role]
}
