package prdeck

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

type recordingLauncher struct {
	names []string
	kills int
}

func (r *recordingLauncher) Launch(spec Spec) (*Handle, error) {
	r.names = append(r.names, spec.Name)
	return NewHandle(spec.Name, 999, func() error { r.kills++; return nil }), nil
}

func TestFacadeSupervisorLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SettleDelay = time.Millisecond
	cfg.Graph.DataDir = t.TempDir()

	rl := &recordingLauncher{}
	sup := New(cfg,
		WithLauncher(rl),
		WithGraphSupport(func() bool { return true }),
		WithResourceDir(func() (string, error) { return t.TempDir(), nil }),
		WithPlatform("linux", "amd64"),
	)
	sup.Start(context.Background())
	if len(rl.names) != 2 || rl.names[0] != string(RoleGraph) || rl.names[1] != string(RoleBackend) {
		t.Fatalf("unexpected launch sequence: %v", rl.names)
	}
	sup.OnWindowDestroyed()
	if rl.kills != 2 {
		t.Fatalf("expected both sidecars terminated, kills=%d", rl.kills)
	}
}

func TestOpenHistory(t *testing.T) {
	st, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer func() { _ = st.Close() }()
	if _, err := st.Recent(context.Background(), 5); err != nil {
		t.Fatalf("recent: %v", err)
	}
}
