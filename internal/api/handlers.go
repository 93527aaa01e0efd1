// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

// Package api provides the HTTP surface of the admin console: first-run
// setup, authentication, admin self-service, health probes, and the config
// proxy to the upstream media server.
package api

import (
	"time"

	"github.com/xstar97/guardian/internal/auth"
	"github.com/xstar97/guardian/internal/config"
	"github.com/xstar97/guardian/internal/credential"
	"github.com/xstar97/guardian/internal/database"
	"github.com/xstar97/guardian/internal/proxy"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response envelope and decode helpers
//   - handlers_health.go: health and setup-status probes
//   - handlers_setup.go: first-run admin provisioning
//   - handlers_auth.go: login and session introspection
//   - handlers_admin.go: authenticated profile and password management
//   - handlers_config.go: upstream config proxy
type Handler struct {
	db          *database.DB
	cfg         *config.Config
	provisioner *credential.Provisioner
	hasher      credential.Hasher
	jwtManager  *auth.JWTManager
	upstream    *proxy.ConfigClient
	startTime   time.Time
}

// NewHandler creates an API handler with all required dependencies. The
// upstream client may be nil when no media server is configured; the config
// proxy endpoints then report the service as unavailable.
func NewHandler(db *database.DB, cfg *config.Config, provisioner *credential.Provisioner, hasher credential.Hasher, jwtManager *auth.JWTManager, upstream *proxy.ConfigClient) *Handler {
	return &Handler{
		db:          db,
		cfg:         cfg,
		provisioner: provisioner,
		hasher:      hasher,
		jwtManager:  jwtManager,
		upstream:    upstream,
		startTime:   time.Now(),
	}
}
