// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"FLYER_DB_PATH" envDefault:"./data/flyercatcher.db"`
	ServerHost string `env:"FLYER_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"FLYER_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"FLYER_ENV" envDefault:"development"`
	LogLevel   string `env:"FLYER_LOG_LEVEL" envDefault:"info"`

	// UploadsDir is where event images are persisted. It must not be inside
	// a web-executable path; files are served back read-only via /uploads/.
	UploadsDir string `env:"FLYER_UPLOADS_DIR" envDefault:"./uploads"`

	// StaticDir optionally points at the static front-end bundle. Empty
	// disables static serving (the front end can be hosted elsewhere; the
	// API is fully cross-origin).
	StaticDir string `env:"FLYER_STATIC_DIR"`

	// Seeding configuration
	DoSeed bool `env:"FLYER_DO_SEED" envDefault:"false"` // Insert sample events into an empty table

	// OrphanSweep configuration
	SweepEnabled  bool `env:"FLYER_SWEEP_ENABLED" envDefault:"true"`
	SweepGraceMin int  `env:"FLYER_SWEEP_GRACE_MIN" envDefault:"1440"` // Minimum file age (minutes) before an unreferenced upload is removed
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("FLYER_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.SweepGraceMin < 0 {
		return nil, fmt.Errorf("FLYER_SWEEP_GRACE_MIN must not be negative, got %d", cfg.SweepGraceMin)
	}

	return cfg, nil
}
