package state

import (
	"sync"
	"testing"
)

func TestStoreStartsInitial(t *testing.T) {
	s := NewStore()
	if s.Current() != Initial {
		t.Fatalf("Current() = %v, want INITIAL", s.Current())
	}
}

func TestStoreTransition(t *testing.T) {
	s := NewStore()

	old, changed := s.Transition(Running)
	if !changed || old != Initial {
		t.Fatalf("first Transition(RUNNING) = (%v, %v), want (INITIAL, true)", old, changed)
	}

	old, changed = s.Transition(Running)
	if changed {
		t.Fatalf("repeated Transition(RUNNING) reported changed (old %v)", old)
	}
	if old != Running {
		t.Errorf("old = %v, want RUNNING", old)
	}

	old, changed = s.Transition(Error)
	if !changed || old != Running {
		t.Fatalf("Transition(ERROR) = (%v, %v), want (RUNNING, true)", old, changed)
	}
	if s.Current() != Error {
		t.Errorf("Current() = %v, want ERROR", s.Current())
	}
}

func TestStoreNeverReentersInitial(t *testing.T) {
	s := NewStore()
	s.Transition(Stopped)

	if _, changed := s.Transition(Initial); changed {
		t.Fatal("Transition(INITIAL) reported changed")
	}
	if s.Current() != Stopped {
		t.Errorf("Current() = %v, want STOPPED", s.Current())
	}
}

func TestStoreAnyEdgeAllowed(t *testing.T) {
	for _, from := range States() {
		for _, to := range States() {
			s := NewStore()
			s.Transition(from)
			_, changed := s.Transition(to)
			if changed != (from != to) {
				t.Errorf("%v -> %v changed = %v", from, to, changed)
			}
			if s.Current() != to {
				t.Errorf("%v -> %v left Current() = %v", from, to, s.Current())
			}
		}
	}
}

func TestStoreConcurrentTransitions(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	var mu sync.Mutex
	changes := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, changed := s.Transition(Running); changed {
				mu.Lock()
				changes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if changes != 1 {
		t.Errorf("changes = %d, want exactly 1", changes)
	}
}
