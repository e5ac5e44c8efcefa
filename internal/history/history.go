package history

import (
	"context"
	"time"
)

// Kind classifies a sidecar lifecycle transition.
type Kind string

const (
	KindLaunch       Kind = "launch"
	KindLaunchFailed Kind = "launch_failed"
	KindTerminate    Kind = "terminate"
)

// Event is one recorded lifecycle transition of a supervised sidecar.
type Event struct {
	ID         int64
	Role       string
	Kind       Kind
	PID        int    // zero for failed launches
	Detail     string // error text for failures, empty otherwise
	OccurredAt time.Time
}

// Store persists sidecar lifecycle events for later inspection. Recording
// is best-effort everywhere: the supervisor logs and continues when a write
// fails.
type Store interface {
	Append(ctx context.Context, ev Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
	Close() error
}
