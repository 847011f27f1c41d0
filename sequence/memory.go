package sequence

import (
	"context"
	"sync"
)

// InMemory is a mutex-guarded counter store. It documents the reservation
// semantics the SQL store gets from its atomic upsert and backs the tests.
type InMemory struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewInMemory() *InMemory {
	return &InMemory{counters: make(map[string]int64)}
}

func (s *InMemory) Reserve(ctx context.Context, kind string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[kind]++
	return s.counters[kind], nil
}

// Seed sets the last issued number for a kind, for tests that start from a
// non-fresh counter.
func (s *InMemory) Seed(kind string, lastNumber int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[kind] = lastNumber
}
