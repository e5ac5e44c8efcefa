//go:build !windows

package sidecar

import (
	"os/exec"
	"syscall"
)

// configureSysProcAttr places the sidecar in its own process group so a
// terminal signal aimed at the application does not reach it directly; the
// supervisor owns its shutdown.
func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
