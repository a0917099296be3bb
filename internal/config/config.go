// Cookbook - Recipe Catalog and Pantry Backend
// Copyright 2026 Cookbook contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/opencookbook/cookbook

// Package config loads and validates the application configuration.
//
// Configuration is layered with koanf: struct defaults first, then an
// optional YAML file, then environment variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Cookbook server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Auth     AuthConfig     `koanf:"auth"`
	Logging  LoggingConfig  `koanf:"logging"`
	Seed     SeedConfig     `koanf:"seed"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path, or ":memory:" for an in-memory store.
	Path string `koanf:"path"`

	// MaxMemory is the DuckDB memory limit, e.g. "512MB".
	MaxMemory string `koanf:"max_memory"`

	// Threads limits DuckDB worker threads; 0 means NumCPU.
	Threads int `koanf:"threads"`
}

// SecurityConfig holds token and password-hashing settings.
type SecurityConfig struct {
	// JWTSecret signs access and refresh tokens. Minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	AccessTokenTTL  time.Duration `koanf:"access_token_ttl"`
	RefreshTokenTTL time.Duration `koanf:"refresh_token_ttl"`

	// BcryptCost is the bcrypt work factor for password hashes.
	BcryptCost int `koanf:"bcrypt_cost"`
}

// AuthConfig holds the refresh-token store settings.
type AuthConfig struct {
	// TokenStorePath is the BadgerDB directory for refresh-token state.
	TokenStorePath string `koanf:"token_store_path"`

	// TokenStoreInMemory runs the token store without disk persistence.
	// Used by tests; a restart then invalidates all refresh tokens.
	TokenStoreInMemory bool `koanf:"token_store_in_memory"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SeedConfig controls sample data loading.
type SeedConfig struct {
	// Enabled inserts the sample catalog at startup when the ingredient
	// table is empty.
	Enabled bool `koanf:"enabled"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "data/cookbook.db",
			MaxMemory: "512MB",
			Threads:   0,
		},
		Security: SecurityConfig{
			JWTSecret:       "",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
			BcryptCost:      12,
		},
		Auth: AuthConfig{
			TokenStorePath:     "data/tokens",
			TokenStoreInMemory: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Seed: SeedConfig{
			Enabled: false,
		},
	}
}

// Validate checks the configuration for values that would fail at
// runtime. Called by Load after all layers are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Security.AccessTokenTTL <= 0 {
		return fmt.Errorf("security.access_token_ttl must be positive")
	}
	if c.Security.RefreshTokenTTL <= c.Security.AccessTokenTTL {
		return fmt.Errorf("security.refresh_token_ttl must exceed access_token_ttl")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost must be between 4 and 31, got %d", c.Security.BcryptCost)
	}
	return nil
}
