package sidecar

import (
	"io"
	"os/exec"
)

// Launcher starts sidecar processes. The OS-backed implementation is
// OSLauncher; tests substitute fakes.
type Launcher interface {
	Launch(spec Spec) (*Handle, error)
}

// LaunchError reports a sidecar that could not be spawned, either because
// the executable was not found or the OS refused the spawn. It is never
// fatal to the application: the caller logs it and continues degraded.
type LaunchError struct {
	Program string
	Err     error
}

func (e *LaunchError) Error() string { return "launch " + e.Program + ": " + e.Err.Error() }
func (e *LaunchError) Unwrap() error { return e.Err }

// OSLauncher spawns sidecars with os/exec. Output goes to the spec's
// rotating log files when configured, otherwise to the null device; the
// handle never carries output delivery.
type OSLauncher struct{}

func (OSLauncher) Launch(spec Spec) (*Handle, error) {
	// #nosec G204 -- programs and args come from the startup sequencer, not user input
	cmd := exec.Command(spec.Program, spec.Args...)
	if spec.WorkDir != "" {
		cmd.Dir = spec.WorkDir
	}
	configureSysProcAttr(cmd)

	// nil Stdout/Stderr route to the null device; os/exec owns that fd
	// and closes it after Wait, so only the log writers need closing.
	outW, errW := spec.Log.Writers(spec.Name)
	if outW != nil {
		cmd.Stdout = outW
	}
	if errW != nil {
		cmd.Stderr = errW
	}

	if err := cmd.Start(); err != nil {
		closeWriters(outW, errW)
		return nil, &LaunchError{Program: spec.Program, Err: err}
	}

	proc := cmd.Process
	h := NewHandle(spec.Name, proc.Pid, func() error { return terminate(proc) })

	// Reap in the background so a terminated sidecar does not linger as a
	// zombie and its log writers get closed.
	go func() {
		_ = cmd.Wait()
		closeWriters(outW, errW)
	}()
	return h, nil
}

func closeWriters(ws ...io.WriteCloser) {
	for _, w := range ws {
		if w != nil {
			_ = w.Close()
		}
	}
}
