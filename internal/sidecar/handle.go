package sidecar

import "log/slog"

// Handle owns one running sidecar process. Ownership moves from the
// launcher to a registry slot and finally to the teardown path; it is never
// duplicated, so the process is signalled at most once.
type Handle struct {
	name string
	pid  int
	kill func() error
}

// NewHandle wraps an already-started process. kill issues the platform
// termination signal; tests substitute a recorder.
func NewHandle(name string, pid int, kill func() error) *Handle {
	return &Handle{name: name, pid: pid, kill: kill}
}

// Name returns the logical sidecar name the handle was launched under.
func (h *Handle) Name() string { return h.name }

// PID returns the OS process identifier.
func (h *Handle) PID() int { return h.pid }

// Terminate issues a single termination signal and does not wait for exit.
// A sidecar that ignores the signal outlives the application.
func (h *Handle) Terminate() {
	slog.Info("terminating sidecar", "name", h.name, "pid", h.pid)
	if h.kill == nil {
		return
	}
	if err := h.kill(); err != nil {
		slog.Warn("failed to signal sidecar", "name", h.name, "pid", h.pid, "error", err)
	}
}
