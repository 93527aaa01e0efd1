// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package api

import (
	"errors"
	"net/http"

	"github.com/xstar97/guardian/internal/auth"
	"github.com/xstar97/guardian/internal/credential"
	"github.com/xstar97/guardian/internal/database"
	"github.com/xstar97/guardian/internal/logging"
	"github.com/xstar97/guardian/internal/metrics"
	"github.com/xstar97/guardian/internal/models"
)

// UpdateProfile changes the authenticated admin's email address. An empty
// email clears the stored address; the account stays usable without one.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	var req models.ProfileUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.provisioner.Policy().ValidateEmail(req.Email); err != nil {
		respondCredentialError(w, err)
		return
	}

	if err := h.db.UpdateAdminEmail(r.Context(), claims.Username, req.Email); err != nil {
		if errors.Is(err, database.ErrAdminNotFound) {
			respondError(w, http.StatusNotFound, "USER_NOT_FOUND", "Admin account no longer exists", nil)
			return
		}
		respondError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Failed to update profile", err)
		return
	}

	logging.Info().Str("username", sanitizeLogValue(claims.Username)).Msg("Admin profile updated")
	respondSuccess(w, http.StatusOK, map[string]string{
		"username": claims.Username,
		"email":    req.Email,
	})
}

// ChangePassword rotates the authenticated admin's password. Unlike the
// maintenance reset tool this path demands proof of the current password
// before accepting a new one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}

	var req models.PasswordChangeRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	admin, err := h.db.GetAdmin(r.Context(), claims.Username)
	if err != nil {
		if errors.Is(err, database.ErrAdminNotFound) {
			respondError(w, http.StatusNotFound, "USER_NOT_FOUND", "Admin account no longer exists", nil)
			return
		}
		respondError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Failed to query admin account", err)
		return
	}

	if err := h.hasher.Compare(admin.PasswordHash, req.CurrentPassword); err != nil {
		metrics.RecordCredentialOperation("password_change", "rejected")
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Current password is incorrect", nil)
		return
	}

	if err := h.provisioner.Policy().ValidatePassword(req.NewPassword); err != nil {
		metrics.RecordCredentialOperation("password_change", "rejected")
		respondCredentialError(w, err)
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		metrics.RecordCredentialOperation("password_change", "rejected")
		respondError(w, http.StatusBadRequest, string(credential.KindPasswordMismatch), "Password and confirmation do not match", nil)
		return
	}

	if err := h.provisioner.ResetAdminPassword(r.Context(), h.db, claims.Username, req.NewPassword); err != nil {
		metrics.RecordCredentialOperation("password_change", "error")
		respondCredentialError(w, err)
		return
	}

	metrics.RecordCredentialOperation("password_change", "success")
	logging.Info().Str("username", sanitizeLogValue(claims.Username)).Msg("Admin password changed")
	respondSuccess(w, http.StatusOK, map[string]string{
		"username": claims.Username,
	})
}
