// Copyright 2025 Omnicore Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "errors"

var (
	// ErrInvalidCredential covers malformed tokens, bad signatures and
	// tokens minted by a different issuer.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrExpiredCredential means the token was once valid but its expiry
	// has passed.
	ErrExpiredCredential = errors.New("expired credential")
	// ErrRevokedCredential means the token is on the denylist.
	ErrRevokedCredential = errors.New("revoked credential")
)
