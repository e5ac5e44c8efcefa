package prdeck

import (
	"context"

	"github.com/prdeck/prdeck-desktop/internal/config"
	"github.com/prdeck/prdeck-desktop/internal/history"
	"github.com/prdeck/prdeck-desktop/internal/registry"
	"github.com/prdeck/prdeck-desktop/internal/sidecar"
	"github.com/prdeck/prdeck-desktop/internal/supervisor"
)

// Re-export core types for the shell layer and embedders.
// These are aliases so conversions are zero-cost.

type Config = config.Config

type Role = registry.Role

const (
	RoleBackend = registry.RoleBackend
	RoleGraph   = registry.RoleGraph
)

type Spec = sidecar.Spec

type Handle = sidecar.Handle

// NewHandle wraps an already-started process; exposed for shell layers
// that spawn through their own primitive.
func NewHandle(name string, pid int, kill func() error) *Handle {
	return sidecar.NewHandle(name, pid, kill)
}

type LaunchError = sidecar.LaunchError

type Launcher = sidecar.Launcher

type Option = supervisor.Option

// Supervisor is a thin facade over internal/supervisor.Supervisor. It is
// what the GUI shell wires up: Start at boot, OnWindowDestroyed from the
// window event hook.
type Supervisor struct{ inner *supervisor.Supervisor }

func New(cfg Config, opts ...Option) *Supervisor {
	return &Supervisor{inner: supervisor.New(cfg, opts...)}
}

func (s *Supervisor) Start(ctx context.Context) { s.inner.Start(ctx) }
func (s *Supervisor) OnWindowDestroyed()        { s.inner.OnWindowDestroyed() }

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config { return config.Default() }

// LoadConfig reads a TOML configuration file over the defaults.
func LoadConfig(path string) (Config, error) { return config.Load(path) }

// OpenHistory opens the local sidecar event store used with WithHistory.
func OpenHistory(path string) (history.Store, error) {
	db, err := history.Open(path)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// WithLauncher, WithHistory and friends are re-exported for shell wiring.
var (
	WithLauncher     = supervisor.WithLauncher
	WithHistory      = supervisor.WithHistory
	WithGraphSupport = supervisor.WithGraphSupport
	WithResourceDir  = supervisor.WithResourceDir
	WithPlatform     = supervisor.WithPlatform
)
