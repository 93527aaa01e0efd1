// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xstar97/guardian/internal/models"
)

// Sentinel errors for the admin store.
var (
	// ErrAdminNotFound indicates no admin record matches the username.
	ErrAdminNotFound = errors.New("admin not found")

	// ErrAdminExists indicates an insert collided with an existing username.
	ErrAdminExists = errors.New("admin already exists")
)

// CreateAdmin inserts a new admin record. Returns ErrAdminExists when the
// username is already taken.
func (db *DB) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO admins (username, email, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		admin.Username, admin.Email, admin.PasswordHash, admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return ErrAdminExists
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// GetAdmin looks up an admin record by username. Returns ErrAdminNotFound
// when no record matches.
func (db *DB) GetAdmin(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := db.conn.QueryRowContext(ctx,
		`SELECT username, email, password_hash, created_at, updated_at
		 FROM admins WHERE username = ?`, username).
		Scan(&admin.Username, &admin.Email, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query admin: %w", err)
	}
	return &admin, nil
}

// AdminCount returns the number of admin records. Used by the setup-status
// surface to decide whether first-run provisioning is still open.
func (db *DB) AdminCount(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

// UpdateAdminPassword overwrites password_hash and updated_at for a single
// record in one atomic update. The returned count distinguishes "updated"
// (1) from "no such user" (0). Implements credential.PasswordUpdater.
func (db *DB) UpdateAdminPassword(ctx context.Context, username, passwordHash string) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE admins SET password_hash = ?, updated_at = ? WHERE username = ?`,
		passwordHash, time.Now().UTC(), username)
	if err != nil {
		return 0, fmt.Errorf("failed to update password: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows, nil
}

// UpdateAdminEmail sets the email for a single record. Returns
// ErrAdminNotFound when no record matches.
func (db *DB) UpdateAdminEmail(ctx context.Context, username, email string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE admins SET email = ?, updated_at = ? WHERE username = ?`,
		email, time.Now().UTC(), username)
	if err != nil {
		return fmt.Errorf("failed to update email: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return ErrAdminNotFound
	}
	return nil
}
