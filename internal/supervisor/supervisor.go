package supervisor

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/prdeck/prdeck-desktop/internal/config"
	"github.com/prdeck/prdeck-desktop/internal/history"
	"github.com/prdeck/prdeck-desktop/internal/metrics"
	"github.com/prdeck/prdeck-desktop/internal/paths"
	"github.com/prdeck/prdeck-desktop/internal/platform"
	"github.com/prdeck/prdeck-desktop/internal/registry"
	"github.com/prdeck/prdeck-desktop/internal/sidecar"
)

// Supervisor owns the startup sequencing and window-close teardown of the
// application's sidecar processes. It launches the graph engine (where the
// platform carries it) and the backend, parks their handles in the
// registry, and terminates whatever is still registered when the window is
// destroyed. No step's failure aborts the sequence; the application always
// reaches a running state, possibly degraded.
type Supervisor struct {
	cfg config.Config
	reg *registry.Registry

	launcher       sidecar.Launcher
	hist           history.Store
	graphSupported func() bool
	resourceDir    func() (string, error)
	goos, goarch   string
}

// Option customizes a Supervisor; used by the shell wiring and by tests.
type Option func(*Supervisor)

// WithLauncher substitutes the process-spawning primitive.
func WithLauncher(l sidecar.Launcher) Option {
	return func(s *Supervisor) { s.launcher = l }
}

// WithHistory attaches a best-effort lifecycle event store.
func WithHistory(h history.Store) Option {
	return func(s *Supervisor) { s.hist = h }
}

// WithGraphSupport overrides the platform capability check.
func WithGraphSupport(f func() bool) Option {
	return func(s *Supervisor) { s.graphSupported = f }
}

// WithResourceDir overrides where bundled payloads are looked up.
func WithResourceDir(f func() (string, error)) Option {
	return func(s *Supervisor) { s.resourceDir = f }
}

// WithPlatform overrides the OS/arch used for module resolution, so every
// platform branch is testable in a single build.
func WithPlatform(goos, goarch string) Option {
	return func(s *Supervisor) { s.goos, s.goarch = goos, goarch }
}

func New(cfg config.Config, opts ...Option) *Supervisor {
	s := &Supervisor{
		cfg:            cfg,
		reg:            registry.New(),
		launcher:       sidecar.OSLauncher{},
		graphSupported: platform.GraphSupported,
		resourceDir:    defaultResourceDir,
		goos:           runtime.GOOS,
		goarch:         runtime.GOARCH,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Registry exposes the lifecycle registry; the shell layer reads it only
// through the supervisor in production, tests inspect it directly.
func (s *Supervisor) Registry() *registry.Registry { return s.reg }

// Start runs the startup sequence: graph engine first when supported, then
// a fixed settle delay so the engine is accepting connections before the
// backend (which depends on it) comes up, then the backend. The delay is a
// deliberate simplification; there is no readiness handshake.
func (s *Supervisor) Start(ctx context.Context) {
	if s.graphSupported() {
		s.startGraph(ctx)
		time.Sleep(s.cfg.SettleDelay)
	} else {
		slog.Info("graph engine not supported on this platform, skipping")
	}
	s.launch(ctx, registry.RoleBackend, sidecar.Spec{
		Name:    string(registry.RoleBackend),
		Program: s.cfg.Backend.Program,
		Log:     s.cfg.Log.File,
	})
}

func (s *Supervisor) startGraph(ctx context.Context) {
	spec, ok := s.graphSpec()
	if !ok {
		return
	}
	s.launch(ctx, registry.RoleGraph, spec)
}

// graphSpec resolves platform paths and assembles the immutable launch
// specification for the graph engine.
func (s *Supervisor) graphSpec() (sidecar.Spec, bool) {
	dataDir := s.cfg.Graph.DataDir
	var modulePath string

	resDir, err := s.resourceDir()
	if err != nil {
		slog.Error("cannot locate resource directory, graph features degraded", "error", err)
		return sidecar.Spec{}, false
	}
	modulePath, err = paths.ModulePath(resDir, s.goos, s.goarch)
	if err != nil {
		slog.Error("no graph module for this platform, graph features degraded", "error", err)
		return sidecar.Spec{}, false
	}
	if dataDir == "" {
		dataDir, err = paths.DataDir()
		if err != nil {
			slog.Error("cannot resolve graph data dir, graph features degraded", "error", err)
			return sidecar.Spec{}, false
		}
	}
	// The engine refuses to start without its persistence directory.
	paths.EnsureDataDir(dataDir)

	return sidecar.Spec{
		Name:    string(registry.RoleGraph),
		Program: s.cfg.Graph.Program,
		Args: []string{
			"--port", strconv.Itoa(s.cfg.Graph.Port),
			"--loadmodule", modulePath,
			"--dir", dataDir,
			"--daemonize", "no",
		},
		Log: s.cfg.Log.File,
	}, true
}

// launch attempts one sidecar and registers its handle on success. Failure
// is logged and recorded, never propagated.
func (s *Supervisor) launch(ctx context.Context, role registry.Role, spec sidecar.Spec) {
	metrics.IncLaunchAttempt(string(role))
	slog.Info("launching sidecar", "role", role, "program", spec.Program)
	h, err := s.launcher.Launch(spec)
	if err != nil {
		metrics.IncLaunchFailure(string(role))
		slog.Error("failed to launch sidecar", "role", role, "error", err)
		if role == registry.RoleBackend {
			slog.Warn("the application may not function correctly without the backend")
		}
		s.record(ctx, history.Event{Role: string(role), Kind: history.KindLaunchFailed, Detail: err.Error()})
		return
	}
	slog.Info("sidecar started", "role", role, "pid", h.PID())
	s.reg.Store(role, h)
	s.record(ctx, history.Event{Role: string(role), Kind: history.KindLaunch, PID: h.PID()})
}

// OnWindowDestroyed tears down every live sidecar. The shell fires this
// exactly once, when the application window is destroyed (not on minimize
// or focus loss). Each role is independent: an empty slot never skips the
// other, and termination is one signal with no wait.
func (s *Supervisor) OnWindowDestroyed() {
	for _, role := range registry.Roles {
		h, ok := s.reg.Take(role)
		if !ok {
			continue
		}
		h.Terminate()
		metrics.IncTermination(string(role))
		s.record(context.Background(), history.Event{Role: string(role), Kind: history.KindTerminate, PID: h.PID()})
	}
}

func (s *Supervisor) record(ctx context.Context, ev history.Event) {
	if s.hist == nil {
		return
	}
	if err := s.hist.Append(ctx, ev); err != nil {
		slog.Debug("history write failed", "kind", ev.Kind, "role", ev.Role, "error", err)
	}
}

// defaultResourceDir is the directory the application binary lives in; the
// bundler places sidecar payloads next to it.
func defaultResourceDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
