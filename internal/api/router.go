// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xstar97/guardian/internal/middleware"
)

// Router assembles the HTTP routing tree.
type Router struct {
	handler *Handler
}

// NewRouter creates a router around the given handler.
func NewRouter(handler *Handler) *Router {
	return &Router{handler: handler}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	h := router.handler
	cfg := h.cfg

	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Security.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.PrometheusMetrics)

	generalLimit := httprate.LimitByIP(cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow)
	loginLimit := httprate.LimitByIP(cfg.Security.LoginRateLimitReqs, cfg.Security.LoginRateLimitWindow)
	requireAuth := h.jwtManager.Middleware(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
	})

	// Health probes stay unthrottled so monitoring never trips the limiter.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
		r.Get("/setup", h.SetupStatus)
	})

	// First-run setup. Public until an admin exists, then answers 409.
	r.Route("/api/v1/setup", func(r chi.Router) {
		r.Use(generalLimit)
		r.Post("/admin", h.SetupAdmin)
	})

	// Login carries the strictest limit as brute force protection.
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(loginLimit).Post("/login", h.Login)
		r.With(generalLimit, requireAuth).Get("/me", h.Me)
	})

	// Authenticated admin self-service and the config proxy.
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(generalLimit)
		r.Use(requireAuth)
		r.Put("/profile", h.UpdateProfile)
		r.Put("/password", h.ChangePassword)
	})
	r.Route("/api/v1/config", func(r chi.Router) {
		r.Use(generalLimit)
		r.Use(requireAuth)
		r.Get("/", h.ConfigGet)
		r.Put("/", h.ConfigPut)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
