// store.go
package stationprefs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	defaultCacheTTL     = 24 * time.Hour
	defaultProductLabel = "Airtime"
)

// Store reads and writes scoped preferences.
type Store struct {
	config *Config
}

// New creates a Store configured by opts.
func New(opts ...Option) *Store {
	cfg := &Config{
		cacheTTL: defaultCacheTTL,
		logger:   NewDefaultLogger(),
		identity: ContextIdentity{},
		clock:    time.Now,
		label:    defaultProductLabel,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Store{
		config: cfg,
	}
}

// Set upserts value under key. When userScoped is true and ctx carries an
// identity the row belongs to that identity; without an identity the write
// falls back to the system scope.
func (s *Store) Set(ctx context.Context, key, value string, userScoped bool) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if s.config.storage == nil {
		return ErrStorageUnavailable
	}

	scope, owner := s.resolveScope(ctx, userScoped)
	pref := &Preference{
		Key:       key,
		Scope:     scope,
		OwnerID:   owner,
		Value:     value,
		UpdatedAt: s.now(),
	}

	if err := s.config.storage.Upsert(ctx, pref); err != nil {
		return err
	}

	if s.config.cache != nil {
		s.setToCache(ctx, pref)
	}

	return nil
}

// Get returns the value stored under key. A user-scoped read with an identity
// only sees that identity's row; every other read sees the system row. A key
// that was never written yields "" and no error.
func (s *Store) Get(ctx context.Context, key string, userScoped bool) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if s.config.storage == nil {
		return "", ErrStorageUnavailable
	}

	scope, owner := s.resolveScope(ctx, userScoped)

	if s.config.cache != nil {
		if value, ok := s.getFromCache(ctx, key, scope, owner); ok {
			return value, nil
		}
	}

	pref, err := s.config.storage.Get(ctx, key, scope, owner)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}

	if s.config.cache != nil {
		s.setToCache(ctx, pref)
	}

	return pref.Value, nil
}

// List returns every row of one scope. For ScopeUser the owner is the current
// identity; without one the result is empty.
func (s *Store) List(ctx context.Context, scope Scope) ([]*Preference, error) {
	if s.config.storage == nil {
		return nil, ErrStorageUnavailable
	}

	owner := ""
	if scope == ScopeUser {
		id, ok := s.config.identity.CurrentIdentity(ctx)
		if !ok {
			return []*Preference{}, nil
		}
		owner = id
	}

	return s.config.storage.List(ctx, scope, owner)
}

func (s *Store) resolveScope(ctx context.Context, userScoped bool) (Scope, string) {
	if !userScoped {
		return ScopeSystem, ""
	}
	id, ok := s.config.identity.CurrentIdentity(ctx)
	if !ok {
		return ScopeSystem, ""
	}
	return ScopeUser, id
}

func (s *Store) now() time.Time {
	return s.config.clock()
}

// cacheKey escapes owner and key so that separators inside them cannot make
// two rows share an entry.
func cacheKey(key string, scope Scope, owner string) string {
	return fmt.Sprintf("pref:%s:%s:%s", scope, url.QueryEscape(owner), url.QueryEscape(key))
}

func (s *Store) getFromCache(ctx context.Context, key string, scope Scope, owner string) (string, bool) {
	data, err := s.config.cache.Get(ctx, cacheKey(key, scope, owner))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.config.logger.Warn("Failed to read preference from cache", "key", key, "error", err)
		}
		return "", false
	}

	value, ok := data.(string)
	if !ok {
		s.config.logger.Warn("Ignoring cached preference of unexpected type", "key", key, "type", fmt.Sprintf("%T", data))
		return "", false
	}
	return value, true
}

func (s *Store) setToCache(ctx context.Context, pref *Preference) {
	err := s.config.cache.Set(ctx, cacheKey(pref.Key, pref.Scope, pref.OwnerID), pref.Value, s.config.cacheTTL)
	if err != nil {
		s.config.logger.Warn("Failed to cache preference", "key", pref.Key, "error", err)
	}
}
