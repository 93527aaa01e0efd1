// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

// Package config provides layered configuration loading for Guardian using
// Koanf v2. Settings are resolved from three sources, highest priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, /etc/guardian/config.yaml, or CONFIG_PATH)
//  3. Environment variables
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"net/url"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Upstream UpstreamConfig `koanf:"upstream"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds SQLite settings. The database is a single file holding
// the admin account table; there is no external database server.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// UpstreamConfig holds settings for the upstream Plex configuration service
// that the /api/v1/config proxy surface forwards to.
type UpstreamConfig struct {
	// URL is the base URL of the upstream service. Empty disables the proxy
	// surface (requests return 502 UPSTREAM_UNREACHABLE).
	URL string `koanf:"url"`

	// Token is sent as X-Plex-Token on proxied requests.
	Token string `koanf:"token"`

	// Timeout bounds each proxied request.
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the client-side requests-per-second cap toward the
	// upstream; RateBurst is the burst allowance.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// SecurityConfig holds authentication and abuse-prevention settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens (HS256). Minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTimeout is the JWT lifetime.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// BcryptCost is the cost factor for password hashing.
	BcryptCost int `koanf:"bcrypt_cost"`

	// RateLimitReqs / RateLimitWindow bound general API traffic per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// LoginRateLimitReqs / LoginRateLimitWindow bound login attempts per
	// client IP (brute-force prevention).
	LoginRateLimitReqs   int           `koanf:"login_rate_limit_reqs"`
	LoginRateLimitWindow time.Duration `koanf:"login_rate_limit_window"`

	// CORSOrigins lists allowed origins for the browser frontend.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that would prevent the server
// from operating correctly. Called by Load after all layers are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters, got %d", len(c.Security.JWTSecret))
	}
	if c.Security.BcryptCost < bcrypt.MinCost || c.Security.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("security.bcrypt_cost must be between %d and %d, got %d",
			bcrypt.MinCost, bcrypt.MaxCost, c.Security.BcryptCost)
	}
	if c.Upstream.URL != "" {
		u, err := url.Parse(c.Upstream.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("upstream.url must be a valid absolute URL, got %q", c.Upstream.URL)
		}
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("security.session_timeout must be positive, got %s", c.Security.SessionTimeout)
	}
	return nil
}
