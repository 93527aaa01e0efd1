// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package models

import "time"

// RoleAdmin is the only role Guardian issues; the console manages a single
// administrator account.
const RoleAdmin = "admin"

// SetupAdminRequest is the first-run provisioning payload. Full policy
// enforcement happens in the credential package; the struct tags only catch
// empty submissions early.
type SetupAdminRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// LoginRequest is the authentication payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// ProfileUpdateRequest updates the authenticated admin's profile.
type ProfileUpdateRequest struct {
	Email string `json:"email"`
}

// PasswordChangeRequest rotates the authenticated admin's password. Unlike
// the maintenance reset path it requires proof of the current password.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// HealthStatus is the payload of the aggregate health endpoint.
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// SetupStatus tells the frontend whether an admin account already exists.
type SetupStatus struct {
	SetupComplete bool `json:"setup_complete"`
}
