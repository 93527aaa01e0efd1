// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/xstar97/guardian/internal/auth"
	"github.com/xstar97/guardian/internal/database"
	"github.com/xstar97/guardian/internal/logging"
	"github.com/xstar97/guardian/internal/metrics"
	"github.com/xstar97/guardian/internal/models"
)

// dummyHash is compared against when the username does not exist, so the
// response time does not reveal which usernames are registered.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// Login authenticates the administrator and issues a session token. The
// token is returned in the body and set as an HTTP-only cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, &req) {
		return
	}

	admin, err := h.db.GetAdmin(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, database.ErrAdminNotFound) {
			// Burn the same bcrypt work as a real comparison.
			_ = h.hasher.Compare(dummyHash, req.Password)
			h.rejectLogin(w, req.Username)
			return
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		respondError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Failed to query admin account", err)
		return
	}

	if err := h.hasher.Compare(admin.PasswordHash, req.Password); err != nil {
		h.rejectLogin(w, req.Username)
		return
	}

	token, err := h.jwtManager.GenerateToken(admin.Username, models.RoleAdmin)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		respondError(w, http.StatusInternalServerError, "TOKEN_GENERATION_FAILED", "Failed to generate authentication token", err)
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logging.Info().Str("username", sanitizeLogValue(admin.Username)).Msg("Administrator logged in")

	expiresAt := time.Now().Add(h.jwtManager.Timeout())
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	respondSuccess(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  admin.Username,
		Role:      models.RoleAdmin,
	})
}

func (h *Handler) rejectLogin(w http.ResponseWriter, username string) {
	metrics.LoginAttempts.WithLabelValues("failure").Inc()
	logging.Warn().Str("username", sanitizeLogValue(username)).Msg("Login rejected")
	respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
}

// Me returns the authenticated admin's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
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

	respondSuccess(w, http.StatusOK, admin)
}
