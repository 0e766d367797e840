package profile

import (
	"sync"

	"modgrip/internal/domain"
)

// ModStore provides access to the installed mods of the open profile
type ModStore interface {
	All() []*domain.ModPackage
	Get(id domain.ModID) *domain.ModPackage
	Replace(mods []*domain.ModPackage)
	Len() int
}

// MemoryModStore is an in-memory implementation of ModStore.
// Pointers handed out by All stay the same until the next Replace, so callers may compare
// them by identity.
type MemoryModStore struct {
	mu   sync.RWMutex
	mods []*domain.ModPackage
}

// NewMemoryModStore creates a new memory-based mod store
func NewMemoryModStore() *MemoryModStore {
	return &MemoryModStore{}
}

// All returns the installed mods in manifest order
func (s *MemoryModStore) All() []*domain.ModPackage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.ModPackage, len(s.mods))
	copy(result, s.mods)
	return result
}

// Get returns the first mod with the given id, or nil
func (s *MemoryModStore) Get(id domain.ModID) *domain.ModPackage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.mods {
		if m.ID().Equals(id) {
			return m
		}
	}
	return nil
}

// Replace swaps the whole list
func (s *MemoryModStore) Replace(mods []*domain.ModPackage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mods = make([]*domain.ModPackage, len(mods))
	copy(s.mods, mods)
}

// Len returns the number of installed mods
func (s *MemoryModStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mods)
}
