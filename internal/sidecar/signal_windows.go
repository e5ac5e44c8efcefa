//go:build windows

package sidecar

import "os"

// terminate forcefully ends the process; Windows has no SIGTERM equivalent
// deliverable to a GUI-less sidecar.
func terminate(p *os.Process) error {
	return p.Kill()
}
