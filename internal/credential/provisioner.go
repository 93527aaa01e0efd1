// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package credential

import (
	"context"
	"crypto/subtle"
	"fmt"
)

// PasswordUpdater is the persistent-store contract the maintenance path
// needs: a single atomic row update keyed by username, returning the number
// of rows affected so "updated" can be distinguished from "no such user".
type PasswordUpdater interface {
	UpdateAdminPassword(ctx context.Context, username, passwordHash string) (int64, error)
}

// Provisioner applies the credential policy and turns accepted passwords
// into stored-ready hashes. It is stateless and safe for concurrent use.
type Provisioner struct {
	policy Policy
	hasher Hasher
}

// NewProvisioner creates a Provisioner with the given policy and hasher.
func NewProvisioner(policy Policy, hasher Hasher) *Provisioner {
	return &Provisioner{policy: policy, hasher: hasher}
}

// Policy returns the policy this provisioner enforces.
func (p *Provisioner) Policy() Policy {
	return p.policy
}

// ProvisionAdminCredential validates a candidate credential set and, when
// accepted, returns the salted hash of the password for storage. The
// confirmation must equal the password byte-for-byte; equality is enforced
// here rather than assumed to happen upstream.
//
// The plaintext is never retained beyond this call and never logged.
func (p *Provisioner) ProvisionAdminCredential(username, email, password, confirmPassword string) (string, error) {
	if err := p.policy.ValidateUsername(username); err != nil {
		return "", err
	}
	if err := p.policy.ValidateEmail(email); err != nil {
		return "", err
	}
	if err := p.policy.ValidatePassword(password); err != nil {
		return "", err
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(confirmPassword)) != 1 {
		return "", newError(KindPasswordMismatch, "password and confirmation do not match")
	}
	return p.hasher.Hash(password)
}

// ResetAdminPassword is the maintenance path: it validates newPassword
// against the policy (no confirmation field — this path is operator-driven,
// not form-driven), hashes it, and overwrites the stored hash for username
// in a single row update. Zero rows affected yields KindUserNotFound.
//
// TRUST BOUNDARY: this operation performs no session or token check. Callers
// are assumed to already hold privileged access to the persistent store; it
// must never be exposed on a network-reachable surface.
func (p *Provisioner) ResetAdminPassword(ctx context.Context, store PasswordUpdater, username, newPassword string) error {
	if err := p.policy.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := p.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	rows, err := store.UpdateAdminPassword(ctx, username, hash)
	if err != nil {
		return wrapError(KindStorageUnavailable, "admin store update failed", err)
	}
	if rows == 0 {
		return newError(KindUserNotFound, fmt.Sprintf("no admin account named %q", username))
	}
	return nil
}
