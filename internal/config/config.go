// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package config loads layered configuration via koanf v2.
//
// Sources, lowest to highest priority:
//
//  1. Built-in defaults (struct provider)
//  2. Config file (config.yaml, or PLAYDEX_CONFIG path)
//  3. Environment variables with PLAYDEX_ prefix
//     (PLAYDEX_SERVER_PORT -> server.port)
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "PLAYDEX_CONFIG"

// DefaultConfigPaths lists config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/playdex/config.yaml",
}

// Config is the root configuration for the Playdex server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Rank      RankConfig      `koanf:"rank"`
	Franchise FranchiseConfig `koanf:"franchise"`
	Playlist  PlaylistConfig  `koanf:"playlist"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RateLimit       int           `koanf:"rate_limit" validate:"gte=0"`

	// CORSOrigins lists allowed origins; empty allows any.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig holds catalog snapshot settings.
type CatalogConfig struct {
	// SnapshotPath is the path to the catalog snapshot artifact.
	// A missing or corrupt snapshot is a fatal startup error.
	SnapshotPath string `koanf:"snapshot_path" validate:"required"`

	// DetailsPath is the optional display-metadata file used for
	// enrichment. The server runs without it.
	DetailsPath string `koanf:"details_path"`
}

// RankConfig holds hybrid scoring parameters.
type RankConfig struct {
	// Weights need not sum to 1; they are used as-is.
	ContentWeight    float64 `koanf:"content_weight" validate:"gte=0"`
	FranchiseWeight  float64 `koanf:"franchise_weight" validate:"gte=0"`
	PopularityWeight float64 `koanf:"popularity_weight" validate:"gte=0"`
	RatingWeight     float64 `koanf:"rating_weight" validate:"gte=0"`

	// ClickDecay is the per-step recency decay applied to clicked items,
	// most recent click first. Must be in (0, 1].
	ClickDecay float64 `koanf:"click_decay" validate:"gt=0,lte=1"`

	// PlayedDamping attenuates already-played items instead of removing
	// them. 0 would hard-exclude, which is deliberately not the policy.
	PlayedDamping float64 `koanf:"played_damping" validate:"gt=0,lte=1"`

	// FranchiseCap is the max results per franchise when diversifying.
	FranchiseCap int `koanf:"franchise_cap" validate:"gte=1"`

	// DefaultK and MaxK bound result counts.
	DefaultK int `koanf:"default_k" validate:"gte=1"`
	MaxK     int `koanf:"max_k" validate:"gte=1"`

	// Seed fixes the diverse-sample random source.
	Seed int64 `koanf:"seed"`
}

// FranchiseConfig holds order-resolution settings.
type FranchiseConfig struct {
	// LookupBaseURL is the external list source queried for franchise
	// orderings, e.g. a wiki host. Empty disables external lookup.
	LookupBaseURL string `koanf:"lookup_base_url"`

	// LookupTimeout bounds a single lookup request.
	LookupTimeout time.Duration `koanf:"lookup_timeout"`

	// LookupRPS rate-limits outbound lookup requests.
	LookupRPS float64 `koanf:"lookup_rps" validate:"gte=0"`

	// CachePath is the persisted lookup cache file.
	CachePath string `koanf:"cache_path"`
}

// PlaylistConfig holds playlist store settings.
type PlaylistConfig struct {
	// DBPath is the sqlite database file for playlists and profiles.
	DBPath string `koanf:"db_path" validate:"required"`

	// OrderCacheSize bounds the arranged-order cache.
	OrderCacheSize int `koanf:"order_cache_size" validate:"gte=1"`
}

// defaultConfig returns the built-in defaults, overridden by file and env.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8484,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			SnapshotPath: "data/catalog.json",
			DetailsPath:  "data/game_details.json",
		},
		Rank: RankConfig{
			ContentWeight:    1.0,
			FranchiseWeight:  0.4,
			PopularityWeight: 0.3,
			RatingWeight:     0.5,
			ClickDecay:       0.9,
			PlayedDamping:    0.25,
			FranchiseCap:     3,
			DefaultK:         54,
			MaxK:             200,
			Seed:             42,
		},
		Franchise: FranchiseConfig{
			LookupBaseURL: "https://en.wikipedia.org/wiki",
			LookupTimeout: 10 * time.Second,
			LookupRPS:     1,
			CachePath:     "data/franchise_cache.json",
		},
		Playlist: PlaylistConfig{
			DBPath:         "data/playdex.db",
			OrderCacheSize: 1024,
		},
	}
}

// Load builds the configuration from defaults, file, and environment.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("PLAYDEX_", ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	return cfg, nil
}

// envTransform maps PLAYDEX_SERVER_PORT to server.port. Only the first
// underscore becomes a section separator; the rest stay in the key.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "PLAYDEX_"))
	return strings.Replace(s, "_", ".", 1)
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks the configuration against struct tags and cross-field
// constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Rank.DefaultK > c.Rank.MaxK {
		return fmt.Errorf("rank.default_k (%d) exceeds rank.max_k (%d)", c.Rank.DefaultK, c.Rank.MaxK)
	}
	return nil
}
