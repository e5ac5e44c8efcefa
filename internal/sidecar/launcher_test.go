//go:build !windows

package sidecar

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prdeck/prdeck-desktop/internal/logger"
)

func TestLaunchMissingExecutable(t *testing.T) {
	_, err := OSLauncher{}.Launch(Spec{Name: "ghost", Program: "definitely-not-a-real-binary-xyz"})
	if err == nil {
		t.Fatalf("expected launch error for missing executable")
	}
	var le *LaunchError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LaunchError, got %T: %v", err, err)
	}
	if le.Program != "definitely-not-a-real-binary-xyz" {
		t.Fatalf("LaunchError.Program = %q", le.Program)
	}
}

func TestLaunchAndTerminate(t *testing.T) {
	h, err := OSLauncher{}.Launch(Spec{Name: "sleeper", Program: "sleep", Args: []string{"10"}})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if h.PID() <= 0 {
		t.Fatalf("expected positive pid, got %d", h.PID())
	}
	if h.Name() != "sleeper" {
		t.Fatalf("name = %q", h.Name())
	}
	h.Terminate()
	waitGone(t, h.PID(), 3*time.Second)
}

func TestLaunchCapturesOutput(t *testing.T) {
	dir := t.TempDir()
	h, err := OSLauncher{}.Launch(Spec{
		Name:    "echoer",
		Program: "sh",
		Args:    []string{"-c", "echo captured-line"},
		Log:     logger.FileConfig{Dir: dir},
	})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	_ = h
	path := filepath.Join(dir, "echoer.stdout.log")
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if b, err := os.ReadFile(path); err == nil && len(b) > 0 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("stdout log %s never populated", path)
}

func TestLaunchWorkDir(t *testing.T) {
	dir := t.TempDir()
	logDir := t.TempDir()
	h, err := OSLauncher{}.Launch(Spec{
		Name:    "pwd",
		Program: "pwd",
		WorkDir: dir,
		Log:     logger.FileConfig{Dir: logDir},
	})
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	_ = h
	path := filepath.Join(logDir, "pwd.stdout.log")
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if b, err := os.ReadFile(path); err == nil && len(b) > 0 {
			got, _ := filepath.EvalSymlinks(string(b[:len(b)-1]))
			want, _ := filepath.EvalSymlinks(dir)
			if got != want {
				t.Fatalf("workdir = %q, want %q", got, want)
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("pwd output never captured")
}
