package web

import (
	"sync"
	"time"

	"ccdash/internal/model"
)

// Snapshot is one fully enriched load of the schedule. Refreshes replace
// the snapshot wholesale; handlers only ever read it, so there is no
// in-place mutation to guard beyond the pointer swap.
type Snapshot struct {
	Rows           []model.Row
	MissingColumns []string
	LoadedAt       time.Time

	// LastError is the message of the most recent failed refresh, empty
	// when the last refresh succeeded. A failed refresh keeps the
	// previous rows so the dashboard degrades instead of going blank.
	LastError string
}

// Store holds the latest snapshot for the HTTP handlers.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Set(snap *Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// SetError records a failed refresh while preserving the previous rows.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		s.snap = &Snapshot{}
	}
	cp := *s.snap
	cp.LastError = msg
	s.snap = &cp
}

// Get returns the current snapshot, which may be nil before the first
// load completes.
func (s *Store) Get() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
