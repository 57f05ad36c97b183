package state

import "sync"

// Store holds the single current ProcessState.
type Store struct {
	mu      sync.RWMutex
	current ProcessState
}

// NewStore creates a store in the Initial state.
func NewStore() *Store {
	return &Store{current: Initial}
}

// Current returns the current state.
func (s *Store) Current() ProcessState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Transition sets next as the current state if it differs.
// It reports the previous state and whether anything changed. Callers must
// skip reconciliation when changed is false. Initial is never re-entered.
func (s *Store) Transition(next ProcessState) (old ProcessState, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old = s.current
	if next == old || next == Initial {
		return old, false
	}
	s.current = next
	return old, true
}
