package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/CreativeUnicorns/stationprefs"
)

type memoryKey struct {
	key   string
	scope stationprefs.Scope
	owner string
}

// MemoryStorage keeps preferences in a map. It is useful for tests and for
// tools that do not need persistence.
type MemoryStorage struct {
	mu    sync.RWMutex
	prefs map[memoryKey]stationprefs.Preference
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		prefs: make(map[memoryKey]stationprefs.Preference),
	}
}

// Get returns a copy of the stored preference or stationprefs.ErrNotFound.
func (s *MemoryStorage) Get(_ context.Context, key string, scope stationprefs.Scope, ownerID string) (*stationprefs.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pref, ok := s.prefs[memoryKey{key, scope, ownerID}]
	if !ok {
		return nil, stationprefs.ErrNotFound
	}
	return &pref, nil
}

// Upsert stores a copy of pref, replacing any row with the same key, scope and owner.
func (s *MemoryStorage) Upsert(_ context.Context, pref *stationprefs.Preference) error {
	stored := *pref
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[memoryKey{pref.Key, pref.Scope, pref.OwnerID}] = stored
	return nil
}

// List returns the rows of one scope and owner ordered by key.
func (s *MemoryStorage) List(_ context.Context, scope stationprefs.Scope, ownerID string) ([]*stationprefs.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*stationprefs.Preference{}
	for k, p := range s.prefs {
		if k.scope == scope && k.owner == ownerID {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Close is a no-op.
func (s *MemoryStorage) Close() error {
	return nil
}
