// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

// Command server runs the Guardian admin console backend.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/xstar97/guardian/internal/api"
	"github.com/xstar97/guardian/internal/auth"
	"github.com/xstar97/guardian/internal/config"
	"github.com/xstar97/guardian/internal/credential"
	"github.com/xstar97/guardian/internal/database"
	"github.com/xstar97/guardian/internal/logging"
	"github.com/xstar97/guardian/internal/proxy"
	"github.com/xstar97/guardian/internal/supervisor"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().Str("version", version).Msg("Starting Guardian")

	if cfg.Security.JWTSecret == "" {
		logging.Fatal().Msg("JWT_SECRET must be set; refusing to start without session security")
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("Failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize session manager")
	}

	hasher := credential.NewBcryptHasher(cfg.Security.BcryptCost)
	provisioner := credential.NewProvisioner(credential.DefaultPolicy(), hasher)

	var upstream *proxy.ConfigClient
	if cfg.Upstream.URL != "" {
		upstream = proxy.NewConfigClient(cfg.Upstream)
		logging.Info().Str("upstream", cfg.Upstream.URL).Msg("Config proxy enabled")
	} else {
		logging.Warn().Msg("No upstream media server configured; config proxy disabled")
	}

	handler := api.NewHandler(db, cfg, provisioner, hasher, jwtManager, upstream)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	slogger := slog.New(logging.NewSlogHandler())
	tree := supervisor.NewTree(slogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.Add(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Listening")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, ctx.Err()) {
		logging.Error().Err(err).Msg("Supervisor stopped with error")
		os.Exit(1)
	}
	logging.Info().Msg("Shutdown complete")
}
