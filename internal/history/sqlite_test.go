package history

import (
	"context"
	"path/filepath"
	"testing"
)

func TestAppendAndRecent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	events := []Event{
		{Role: "graph", Kind: KindLaunch, PID: 101},
		{Role: "backend", Kind: KindLaunchFailed, Detail: "executable not found"},
		{Role: "graph", Kind: KindTerminate, PID: 101},
	}
	for _, ev := range events {
		if err := db.Append(ctx, ev); err != nil {
			t.Fatalf("append %v: %v", ev.Kind, err)
		}
	}

	got, err := db.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	// most recent first
	if got[0].Kind != KindTerminate || got[0].Role != "graph" || got[0].PID != 101 {
		t.Fatalf("unexpected newest event: %+v", got[0])
	}
	if got[1].Detail != "executable not found" {
		t.Fatalf("failure detail lost: %+v", got[1])
	}
	if got[0].OccurredAt.IsZero() {
		t.Fatalf("occurred_at not backfilled")
	}
}

func TestOpenTwiceSchemaIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	db1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	_ = db1.Close()
	db2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	_ = db2.Close()
}

func TestOpenCreatesMissingParentDirs(t *testing.T) {
	// fresh-install case: the per-user data dir does not exist yet
	path := filepath.Join(t.TempDir(), "prdeck", "history.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("open with missing parent dir: %v", err)
	}
	defer func() { _ = db.Close() }()
	if err := db.Append(context.Background(), Event{Role: "backend", Kind: KindLaunch, PID: 1}); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
