// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package api

import (
	"net/http"
	"time"

	"github.com/xstar97/guardian/internal/models"
)

// Health reports overall service status including database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "connected"
	httpStatus := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
		httpStatus = http.StatusServiceUnavailable
	}

	respondSuccess(w, httpStatus, models.HealthStatus{
		Status:   status,
		Database: dbStatus,
		Uptime:   time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HealthLive is the liveness probe; it answers as long as the process serves
// requests.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe; it fails until the database answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Database not reachable", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}

// SetupStatus tells the frontend whether first-run provisioning is still
// needed. Public by design: the setup wizard runs before any admin exists.
func (h *Handler) SetupStatus(w http.ResponseWriter, r *http.Request) {
	count, err := h.db.AdminCount(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Failed to query admin accounts", err)
		return
	}
	respondSuccess(w, http.StatusOK, models.SetupStatus{
		SetupComplete: count > 0,
	})
}
