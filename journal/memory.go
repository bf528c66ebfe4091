package journal

import (
	"context"
	"errors"
	"sync"
)

// MemoryStore keeps decisions in process. With a positive maxEntries it is
// a ring: once full, each save overwrites the oldest decision.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	maxEntries  int
	decisions   []Decision
	next        int // slot the next save overwrites once the ring is full
}

// NewMemoryStore returns an unbounded store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewBoundedMemoryStore keeps only the newest maxEntries decisions. A
// maxEntries of zero or less means unbounded.
func NewBoundedMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{maxEntries: maxEntries}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.decisions = nil
	s.next = 0
	return nil
}

func (s *MemoryStore) SaveDecision(_ context.Context, d Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	if s.maxEntries > 0 && len(s.decisions) == s.maxEntries {
		s.decisions[s.next] = d
		s.next = (s.next + 1) % s.maxEntries
		return nil
	}
	s.decisions = append(s.decisions, d)
	return nil
}

func (s *MemoryStore) ListDecisions(_ context.Context, limit int) ([]Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errors.New("store is not initialized")
	}
	total := len(s.decisions)
	n := total
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Decision, 0, n)
	// next is 0 until the ring wraps, so newest sits just before it.
	newest := (s.next - 1 + total) % max(total, 1)
	for i := 0; i < n; i++ {
		out = append(out, s.decisions[(newest-i+total)%total])
	}
	return out, nil
}
