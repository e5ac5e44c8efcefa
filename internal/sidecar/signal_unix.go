//go:build !windows

package sidecar

import (
	"os"
	"syscall"
)

// terminate sends SIGTERM once. No escalation: a sidecar that ignores the
// signal is left to the OS.
func terminate(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}
