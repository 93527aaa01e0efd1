// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/xstar97/guardian/internal/credential"
	"github.com/xstar97/guardian/internal/database"
	"github.com/xstar97/guardian/internal/models"
)

func noEnv(string) string { return "" }

// seedAdmin creates a database file with one admin account and returns its
// path. The seeded hash uses the minimum bcrypt cost to keep tests fast.
func seedAdmin(t *testing.T, username string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "guardian.db")
	db, err := database.New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	hash, err := credential.NewBcryptHasher(bcrypt.MinCost).Hash("OldPassword123!")
	if err != nil {
		t.Fatal(err)
	}
	if err := db.CreateAdmin(t.Context(), &models.Admin{
		Username:     username,
		PasswordHash: hash,
	}); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_UsageOnWrongArgCount(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{},
		{"onlyuser"},
		{"user", "pass", "path", "extra"},
	} {
		var stderr bytes.Buffer
		code := run(args, noEnv, &bytes.Buffer{}, &stderr)
		if code != 2 {
			t.Errorf("run(%v) = %d, want 2", args, code)
		}
		if !strings.Contains(stderr.String(), "usage:") {
			t.Errorf("run(%v) stderr = %q, want usage line", args, stderr.String())
		}
	}
}

func TestRun_ResetsPassword(t *testing.T) {
	t.Parallel()

	path := seedAdmin(t, "plexadmin")
	newPassword := "Abcdef123456!"

	var stdout, stderr bytes.Buffer
	code := run([]string{"plexadmin", newPassword, path}, noEnv, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("run exited %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "plexadmin") {
		t.Errorf("stdout = %q, want status line naming the account", stdout.String())
	}

	// The new password must authenticate.
	db, err := database.New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	admin, err := db.GetAdmin(t.Context(), "plexadmin")
	if err != nil {
		t.Fatal(err)
	}
	hasher := credential.NewBcryptHasher(bcrypt.MinCost)
	if err := hasher.Compare(admin.PasswordHash, newPassword); err != nil {
		t.Errorf("new password does not authenticate: %v", err)
	}
	if err := hasher.Compare(admin.PasswordHash, "OldPassword123!"); err == nil {
		t.Error("old password still authenticates")
	}
}

func TestRun_UnknownUser(t *testing.T) {
	t.Parallel()

	path := seedAdmin(t, "plexadmin")

	var stderr bytes.Buffer
	code := run([]string{"ghost", "Abcdef123456!", path}, noEnv, &bytes.Buffer{}, &stderr)
	if code == 0 {
		t.Fatal("run succeeded for unknown user")
	}
	if !strings.Contains(stderr.String(), "ghost") {
		t.Errorf("stderr = %q, want message naming the account", stderr.String())
	}
}

func TestRun_RejectsWeakPassword(t *testing.T) {
	t.Parallel()

	path := seedAdmin(t, "plexadmin")

	var stderr bytes.Buffer
	code := run([]string{"plexadmin", "weak", path}, noEnv, &bytes.Buffer{}, &stderr)
	if code == 0 {
		t.Fatal("run accepted a policy-violating password")
	}

	// The stored credential must be untouched.
	db, err := database.New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	admin, err := db.GetAdmin(t.Context(), "plexadmin")
	if err != nil {
		t.Fatal(err)
	}
	if err := credential.NewBcryptHasher(bcrypt.MinCost).Compare(admin.PasswordHash, "OldPassword123!"); err != nil {
		t.Error("original password no longer authenticates after rejected reset")
	}
}

func TestRun_MissingDatabase(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	code := run([]string{"plexadmin", "Abcdef123456!", filepath.Join(t.TempDir(), "missing.db")}, noEnv, &bytes.Buffer{}, &stderr)
	if code == 0 {
		t.Fatal("run succeeded against a missing database file")
	}
	if !strings.Contains(stderr.String(), "database not found") {
		t.Errorf("stderr = %q, want database-not-found message", stderr.String())
	}
}

func TestRun_DatabasePathFromEnv(t *testing.T) {
	t.Parallel()

	path := seedAdmin(t, "plexadmin")
	env := func(key string) string {
		if key == "DATABASE_PATH" {
			return path
		}
		return ""
	}

	var stderr bytes.Buffer
	code := run([]string{"plexadmin", "Abcdef123456!"}, env, &bytes.Buffer{}, &stderr)
	if code != 0 {
		t.Fatalf("run exited %d, stderr: %s", code, stderr.String())
	}
}
