// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenancy

import "errors"

var (
	// ErrUnknownPrincipal means the token subject does not map to an
	// active user record.
	ErrUnknownPrincipal = errors.New("unknown principal")
	// ErrTenantAccessDenied means a tenant selector was supplied but the
	// principal holds no active membership in that tenant, or the tenant
	// does not exist. The two cases are deliberately indistinguishable to
	// the caller.
	ErrTenantAccessDenied = errors.New("tenant access denied")
)
