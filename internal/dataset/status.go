package dataset

import (
	"sync"
	"time"
)

// Status is the load phase of a Reader.
type Status string

const (
	StatusUninitialized    Status = "uninitialized"
	StatusLoadingManifests Status = "loading_manifests"
	StatusFiltering        Status = "filtering"
	StatusIndexing         Status = "indexing"
	StatusReady            Status = "ready"
	StatusFailed           Status = "failed"
)

// state tracks the current phase. Phases only move forward.
type state struct {
	mu        sync.Mutex
	status    Status
	err       error
	updatedAt time.Time
}

func (s *state) set(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.updatedAt = time.Now()
}

func (s *state) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusFailed
	s.err = err
	s.updatedAt = time.Now()
}

// StatusSnapshot is a JSON-safe view of the load state.
type StatusSnapshot struct {
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *state) snapshot() StatusSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := StatusSnapshot{Status: s.status, UpdatedAt: s.updatedAt}
	if s.err != nil {
		snap.Error = s.err.Error()
	}
	return snap
}
