//go:build !windows

package sidecar

import (
	"syscall"
	"testing"
	"time"
)

// waitGone polls until the pid no longer accepts signal 0 or the timeout
// elapses. A zombie still being reaped by the launcher goroutine counts as
// gone once Wait completes.
func waitGone(t *testing.T, pid int, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if syscall.Kill(pid, 0) != nil {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("process %d still alive after %v", pid, timeout)
}
