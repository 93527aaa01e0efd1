// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

// Command resetpw resets an administrator password directly in the database.
//
// This is the break-glass path for a locked-out admin and runs with no
// authentication: anyone who can execute it on the host already controls the
// database file. Operating system access control is the security boundary.
//
// Usage:
//
//	resetpw <username> <new-password> [db-path]
//
// The database path may also be supplied via DATABASE_PATH. The new password
// must satisfy the same policy the web console enforces.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/xstar97/guardian/internal/credential"
	"github.com/xstar97/guardian/internal/database"
)

const defaultDBPath = "/data/guardian.db"

func main() {
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(stderr, "usage: resetpw <username> <new-password> [db-path]")
		return 2
	}
	username, newPassword := args[0], args[1]

	dbPath := defaultDBPath
	if env := getenv("DATABASE_PATH"); env != "" {
		dbPath = env
	}
	if len(args) == 3 {
		dbPath = args[2]
	}

	// Opening a missing file would create an empty database and report the
	// user as unknown; a path error is the more useful failure.
	if _, err := os.Stat(dbPath); err != nil {
		fmt.Fprintf(stderr, "error: database not found at %s\n", dbPath)
		return 1
	}

	db, err := database.New(dbPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to open database: %v\n", err)
		return 1
	}
	defer func() { _ = db.Close() }()

	hasher := credential.NewBcryptHasher(credential.DefaultBcryptCost)
	provisioner := credential.NewProvisioner(credential.DefaultPolicy(), hasher)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := provisioner.ResetAdminPassword(ctx, db, username, newPassword); err != nil {
		switch credential.KindOf(err) {
		case credential.KindUserNotFound:
			fmt.Fprintf(stderr, "error: no admin account named %q\n", username)
		default:
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return 1
	}

	fmt.Fprintf(stdout, "Password for %q has been reset.\n", username)
	return 0
}
