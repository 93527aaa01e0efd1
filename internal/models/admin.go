// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

// Package models defines the data structures shared between the API layer,
// the credential core, and the storage layer.
package models

import "time"

// Admin is the stored admin record. The password is retained only as a
// salted one-way hash; the plaintext never reaches this struct.
type Admin struct {
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
