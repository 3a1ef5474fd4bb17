package conversation

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound reports an unknown conversation id.
var ErrNotFound = errors.New("conversation not found")

// Store owns all conversation states in the process, keyed by an opaque
// id. Operations against the same id are serialized by a per-entry
// mutex, so two concurrent questions on one conversation cannot
// interleave state mutation.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mu    sync.Mutex
	state *State
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Create registers a new conversation around the given document and
// returns its generated id.
func (s *Store) Create(doc *DocumentRecord) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &entry{state: &State{ID: id, Document: doc}}
	return id
}

// Do runs fn with exclusive access to the conversation's state. The
// state may be mutated in place; no other operation on the same id runs
// concurrently.
func (s *Store) Do(id string, fn func(*State) error) error {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.state)
}

// History returns a copy of the conversation's turns, oldest first.
func (s *Store) History(id string) ([]Turn, error) {
	var turns []Turn
	err := s.Do(id, func(state *State) error {
		turns = append(turns, state.History...)
		return nil
	})
	return turns, err
}

// Delete drops the conversation.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len returns the number of live conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
