// Guardian - Plex Media Server Administration Console
// Copyright 2026 xstar97
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xstar97/guardian

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.Security.JWTSecret = "too-short" },
			wantErr: "jwt_secret",
		},
		{
			name: "jwt secret long enough",
			mutate: func(c *Config) {
				c.Security.JWTSecret = strings.Repeat("s", 32)
			},
			wantErr: "",
		},
		{
			name:    "bcrypt cost too low",
			mutate:  func(c *Config) { c.Security.BcryptCost = 2 },
			wantErr: "bcrypt_cost",
		},
		{
			name:    "bcrypt cost too high",
			mutate:  func(c *Config) { c.Security.BcryptCost = 40 },
			wantErr: "bcrypt_cost",
		},
		{
			name:    "invalid upstream url",
			mutate:  func(c *Config) { c.Upstream.URL = "not a url" },
			wantErr: "upstream.url",
		},
		{
			name:    "relative upstream url",
			mutate:  func(c *Config) { c.Upstream.URL = "/just/a/path" },
			wantErr: "upstream.url",
		},
		{
			name:    "valid upstream url",
			mutate:  func(c *Config) { c.Upstream.URL = "http://plex:32400" },
			wantErr: "",
		},
		{
			name:    "zero session timeout",
			mutate:  func(c *Config) { c.Security.SessionTimeout = 0 },
			wantErr: "session_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 4000
database:
  path: /tmp/file-layer.db
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("SERVER_PORT", "5000")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// env beats file
	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want 5000 (env override)", cfg.Server.Port)
	}
	// file beats defaults
	if cfg.Database.Path != "/tmp/file-layer.db" {
		t.Errorf("Database.Path = %q, want file value", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	// untouched values fall back to defaults
	if cfg.Security.BcryptCost != 12 {
		t.Errorf("Security.BcryptCost = %d, want default 12", cfg.Security.BcryptCost)
	}
	if cfg.Security.LoginRateLimitWindow != 5*time.Minute {
		t.Errorf("LoginRateLimitWindow = %s, want default 5m", cfg.Security.LoginRateLimitWindow)
	}
	// comma-separated CORS origins are split and trimmed
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "http://b.example" {
		t.Errorf("CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}
}

func TestLoad_DefaultsOnly(t *testing.T) {
	// Point CONFIG_PATH at a nonexistent file so no ambient config.yaml in
	// the working directory can leak into the test.
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Addr() != "0.0.0.0:3300" {
		t.Errorf("Addr() = %q, want 0.0.0.0:3300", cfg.Server.Addr())
	}
}
