// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// claimsKey carries the authenticated claims through the request context.
const claimsKey contextKey = "auth_claims"

// ClaimsFromContext returns the authenticated claims, or nil when the
// request did not pass through Middleware.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// ContextWithClaims returns a context carrying claims. Exposed for handler
// tests.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Middleware returns a chi-compatible middleware that requires a valid
// Bearer token. Unauthenticated requests receive 401 with a
// WWW-Authenticate header; authenticated requests carry their claims in the
// context.
//
// The 401 body is written by onUnauthorized so the API layer controls the
// response envelope without an import cycle.
func (m *JWTManager) Middleware(onUnauthorized func(w http.ResponseWriter, r *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="Guardian"`)
				onUnauthorized(w, r)
				return
			}

			claims, err := m.ValidateToken(token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="Guardian", error="invalid_token"`)
				onUnauthorized(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}
