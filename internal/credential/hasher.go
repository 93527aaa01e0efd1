// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package credential

import (
	"crypto/sha512"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost balances offline brute-force resistance against
// interactive login latency (tens of milliseconds per hash on commodity
// hardware).
const DefaultBcryptCost = 12

// Hasher produces and verifies salted one-way password hashes.
type Hasher interface {
	// Hash returns an opaque hash string suitable for storage.
	Hash(password string) (string, error)

	// Compare returns nil when password matches hash.
	Compare(hash, password string) error
}

// BcryptHasher implements Hasher with bcrypt. Hashing is CPU-bound and
// deliberately slow; callers should not hold unrelated locks across it.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt hasher. Costs outside bcrypt's valid
// range fall back to DefaultBcryptCost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return BcryptHasher{cost: cost}
}

// prehash folds a password of any length into a fixed 86-byte string.
// bcrypt rejects input beyond 72 bytes, which would cut the accepted
// 12-128 character range short; SHA-512 plus base64 keeps the full password
// significant while staying under the limit.
func prehash(password string) []byte {
	sum := sha512.Sum512([]byte(password))
	out := make([]byte, base64.RawStdEncoding.EncodedLen(len(sum)))
	base64.RawStdEncoding.Encode(out, sum[:])
	return out
}

// Hash generates a salted bcrypt hash of the pre-digested password. Backend
// failures are reported as KindHashingFailed and are non-retryable without
// caller intervention.
func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", wrapError(KindHashingFailed, "failed to hash password", err)
	}
	return string(hash), nil
}

// Compare checks password against a stored hash using the same pre-digest
// as Hash. bcrypt.CompareHashAndPassword is timing-safe by design.
func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), prehash(password))
}
