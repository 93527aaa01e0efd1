// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package api

import (
	"errors"
	"net/http"

	"github.com/xstar97/guardian/internal/database"
	"github.com/xstar97/guardian/internal/logging"
	"github.com/xstar97/guardian/internal/metrics"
	"github.com/xstar97/guardian/internal/models"
)

// SetupAdmin provisions the initial administrator credential.
//
// The endpoint is public because it runs before any account exists; it is
// disabled as soon as an admin has been created. All credential policy
// rejections surface with their kind as the error code so the setup wizard
// can highlight the failing field.
func (h *Handler) SetupAdmin(w http.ResponseWriter, r *http.Request) {
	count, err := h.db.AdminCount(r.Context())
	if err != nil {
		metrics.RecordCredentialOperation("provision", "error")
		respondError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Failed to query admin accounts", err)
		return
	}
	if count > 0 {
		respondError(w, http.StatusConflict, "ADMIN_EXISTS", "An administrator account already exists", nil)
		return
	}

	var req models.SetupAdminRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	hash, err := h.provisioner.ProvisionAdminCredential(req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		metrics.RecordCredentialOperation("provision", "rejected")
		respondCredentialError(w, err)
		return
	}

	admin := &models.Admin{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.db.CreateAdmin(r.Context(), admin); err != nil {
		metrics.RecordCredentialOperation("provision", "error")
		if errors.Is(err, database.ErrAdminExists) {
			respondError(w, http.StatusConflict, "ADMIN_EXISTS", "An administrator account already exists", nil)
			return
		}
		respondError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Failed to store admin account", err)
		return
	}

	metrics.RecordCredentialOperation("provision", "success")
	logging.Info().Str("username", sanitizeLogValue(req.Username)).Msg("Administrator account provisioned")

	respondSuccess(w, http.StatusCreated, map[string]string{
		"username": admin.Username,
	})
}
