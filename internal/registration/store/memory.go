// Package store holds live registrations in memory.
package store

import (
	"context"
	"fmt"
	"sync"

	"retreat/internal/registration/orchestrator"
	"retreat/pkg/domain"
	"retreat/pkg/platform/sentinel"
)

type entry struct {
	mu sync.Mutex
	o  *orchestrator.Orchestrator
}

// InMemoryStore keeps orchestrators in a map. The map lock only guards
// lookups; each registration has its own lock so requests for different
// registrations never wait on each other.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[domain.RegistrationID]*entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[domain.RegistrationID]*entry)}
}

func (s *InMemoryStore) Create(_ context.Context, o *orchestrator.Orchestrator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[o.ID()]; ok {
		return fmt.Errorf("registration %s: %w", o.ID(), sentinel.ErrConflict)
	}
	s.entries[o.ID()] = &entry{o: o}
	return nil
}

func (s *InMemoryStore) Update(ctx context.Context, id domain.RegistrationID, fn func(*orchestrator.Orchestrator) error) error {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("registration %s: %w", id, sentinel.ErrNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(e.o)
}

// Len returns the number of stored registrations.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
