package registry

import (
	"sync"

	"github.com/prdeck/prdeck-desktop/internal/sidecar"
)

// Role keys a registry slot.
type Role string

const (
	RoleBackend Role = "backend"
	RoleGraph   Role = "graph"
)

// Roles lists every slot in teardown order. The graph engine goes down
// first so the backend never observes a half-alive dependency longer than
// necessary; each teardown is independent regardless.
var Roles = []Role{RoleGraph, RoleBackend}

// Registry holds at most one sidecar handle per role. It is the only
// mutable state shared between the startup path and the asynchronous
// window-destroyed delivery; each slot has its own lock.
//
// The discipline is store-once at startup, take-at-most-once at teardown.
// Store never terminates a previous handle; callers store each role exactly
// once per application run.
type Registry struct {
	backend slot
	graph   slot
}

type slot struct {
	mu sync.Mutex
	h  *sidecar.Handle
}

func New() *Registry { return &Registry{} }

// Store places a handle in the role's slot, overwriting any previous one.
func (r *Registry) Store(role Role, h *sidecar.Handle) {
	s := r.slot(role)
	if s == nil {
		return
	}
	s.mu.Lock()
	s.h = h
	s.mu.Unlock()
}

// Take atomically removes and returns the handle for role; a second Take
// observes an empty slot. A slot whose lock is held by another goroutine is
// treated as empty so teardown never blocks behind the startup path.
func (r *Registry) Take(role Role) (*sidecar.Handle, bool) {
	s := r.slot(role)
	if s == nil || !s.mu.TryLock() {
		return nil, false
	}
	defer s.mu.Unlock()
	h := s.h
	s.h = nil
	return h, h != nil
}

func (r *Registry) slot(role Role) *slot {
	switch role {
	case RoleBackend:
		return &r.backend
	case RoleGraph:
		return &r.graph
	}
	return nil
}
