package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/prdeck/prdeck-desktop/internal/logger"
)

// Defaults for the supervised sidecars. Every field has a working default
// so the application runs with no config file present.
const (
	DefaultGraphPort     = 6379
	DefaultGraphProgram  = "prdeck-graphd"
	DefaultBackend       = "prdeck-backend"
	DefaultSettleDelay   = 2 * time.Second
	DefaultHistoryDBName = "history.db"
)

// Config is the supervisor's file configuration (TOML).
type Config struct {
	Graph         GraphConfig   `mapstructure:"graph"`
	Backend       BackendConfig `mapstructure:"backend"`
	SettleDelay   time.Duration `mapstructure:"settle_delay"`
	Log           logger.Config `mapstructure:"log"`
	HistoryPath   string        `mapstructure:"history_path"`
	MetricsListen string        `mapstructure:"metrics_listen"` // empty disables the debug listener
}

// GraphConfig configures the embedded graph engine sidecar.
type GraphConfig struct {
	Program string `mapstructure:"program"`
	Port    int    `mapstructure:"port"`
	DataDir string `mapstructure:"data_dir"` // overrides the resolved per-user dir when set
}

// BackendConfig configures the application backend sidecar.
type BackendConfig struct {
	Program string `mapstructure:"program"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Graph:       GraphConfig{Program: DefaultGraphProgram, Port: DefaultGraphPort},
		Backend:     BackendConfig{Program: DefaultBackend},
		SettleDelay: DefaultSettleDelay,
		Log: logger.Config{
			Slog: logger.SlogConfig{Level: logger.LevelInfo, Format: logger.FormatText, TimeStamps: true},
		},
	}
}

// Load reads a TOML config file and merges it over the defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return normalize(cfg), nil
}

// normalize backfills zero values a partial file may have cleared.
func normalize(cfg Config) Config {
	def := Default()
	if cfg.Graph.Program == "" {
		cfg.Graph.Program = def.Graph.Program
	}
	if cfg.Graph.Port <= 0 {
		cfg.Graph.Port = def.Graph.Port
	}
	if cfg.Backend.Program == "" {
		cfg.Backend.Program = def.Backend.Program
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = def.SettleDelay
	}
	return cfg
}
