package paths

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-user directory the application owns under the
// platform's local data root.
const appDirName = "prdeck"

// Resolved holds the platform-dependent locations the graph engine needs:
// the bundled query module and the persistence directory. Computed once at
// startup and read-only afterwards.
type Resolved struct {
	ModulePath string
	DataDir    string
}

// Resolve computes both locations for the current platform. resourceDir is
// where the application bundle keeps its sidecar payloads.
func Resolve(resourceDir string) (Resolved, error) {
	mod, err := ModulePath(resourceDir, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return Resolved{}, err
	}
	data, err := DataDir()
	if err != nil {
		return Resolved{}, err
	}
	return Resolved{ModulePath: mod, DataDir: data}, nil
}

// ModulePath returns the bundled graph-query module location for the given
// platform. The bundle ships one module file per supported OS/arch pair
// under <resourceDir>/modules.
func ModulePath(resourceDir, goos, goarch string) (string, error) {
	name, err := moduleFileName(goos, goarch)
	if err != nil {
		return "", err
	}
	return filepath.Join(resourceDir, "modules", name), nil
}

func moduleFileName(goos, goarch string) (string, error) {
	switch goos + "/" + goarch {
	case "linux/amd64":
		return "graphquery-linux-x64.so", nil
	case "linux/arm64":
		return "graphquery-linux-arm64.so", nil
	case "darwin/amd64":
		return "graphquery-macos-x64.dylib", nil
	case "darwin/arm64":
		return "graphquery-macos-arm64.dylib", nil
	}
	return "", fmt.Errorf("no graph module bundled for %s/%s", goos, goarch)
}

// DataDir returns the per-user persistence directory for the graph engine.
func DataDir() (string, error) {
	root, err := userDataRoot(runtime.GOOS)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, appDirName, "graph"), nil
}

// EnsureDataDir creates dir and every missing intermediate. Creation is
// idempotent; failures are logged and swallowed because the engine reports
// its own error when the directory is unusable.
func EnsureDataDir(dir string) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		slog.Warn("failed to create graph data dir", "dir", dir, "error", err)
	}
}

// userDataRoot locates the platform's per-user local data root.
func userDataRoot(goos string) (string, error) {
	switch goos {
	case "windows":
		if d := os.Getenv("LOCALAPPDATA"); d != "" {
			return d, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Local"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	default:
		if d := os.Getenv("XDG_DATA_HOME"); d != "" {
			return d, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share"), nil
	}
}
