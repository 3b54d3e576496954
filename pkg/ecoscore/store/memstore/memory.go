package memstore

import (
	"context"
	"sync"

	"github.com/verdeloop/ecoscore/pkg/ecoscore/profile"
)

// Store is an in-memory implementation of store.Store for tests and
// ephemeral runs. All reads and writes deep-copy, so callers never alias
// stored state.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]profile.Profile
	order    []string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{profiles: make(map[string]profile.Profile)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// LoadProfile returns the stored profile, or a fresh skeleton when the
// id has never been saved.
func (s *Store) LoadProfile(ctx context.Context, id string) (profile.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.profiles[id]; ok {
		return p.Clone(), true, nil
	}
	return profile.New(id, ""), false, nil
}

// SaveProfile overwrites the stored state for p.ID.
func (s *Store) SaveProfile(ctx context.Context, p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.profiles[p.ID] = p.Clone()
	return nil
}

// ListProfiles returns all profiles in insertion order.
func (s *Store) ListProfiles(ctx context.Context) ([]profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]profile.Profile, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.profiles[id].Clone())
	}
	return out, nil
}

// FindByName returns the first stored profile named name.
func (s *Store) FindByName(ctx context.Context, name string) (profile.Profile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if p := s.profiles[id]; p.Name == name {
			return p.Clone(), true, nil
		}
	}
	return profile.Profile{}, false, nil
}
