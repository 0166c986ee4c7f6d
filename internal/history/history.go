// Package history keeps a session-scoped, append-only record of
// inspected documents and generated batches. Entries are snapshots:
// never mutated after creation, evicted only by a full clear. Sessions
// never share state; each owns its list and AI-use counter.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"jsonspect/internal/models"
)

// EntryKind labels what produced a history entry
type EntryKind string

const (
	KindFormat EntryKind = "format"
	KindMock   EntryKind = "mock"
)

// Entry is one immutable history record
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Kind      EntryKind      `json:"kind"`
	Source    models.Value   `json:"source"`
	Batch     []models.Value `json:"batch,omitempty"`
}

// Session owns one user's history
type Session struct {
	id string

	mu      sync.Mutex
	entries []Entry
	aiUses  int
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Append adds an entry to the session history
func (s *Session) Append(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// Entries returns a copy of the session history, oldest first
func (s *Session) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Latest returns the most recent entry, if any
func (s *Session) Latest() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// LatestBatch returns the most recent generated batch, if any
func (s *Session) LatestBatch() ([]models.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Kind == KindMock && len(s.entries[i].Batch) > 0 {
			return s.entries[i].Batch, true
		}
	}
	return nil, false
}

// Clear evicts all entries and resets the AI-use counter
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.aiUses = 0
}

// TryUseAI consumes one AI question if the session is under limit.
// A limit of zero or less means unlimited.
func (s *Session) TryUseAI(limit int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > 0 && s.aiUses >= limit {
		return false
	}
	s.aiUses++
	return true
}

// AIUses returns how many AI questions the session has consumed
func (s *Session) AIUses() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aiUses
}

// Store maps session IDs to sessions
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Session returns the session for id, creating it if needed. An empty id
// allocates a fresh session with a generated identifier.
func (st *Store) Session(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}

	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s = &Session{id: id}
	st.sessions[id] = s
	return s
}
