package stationprefs

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type rowKey struct {
	key   string
	scope Scope
	owner string
}

// MockStorage implements the Storage interface for testing
type MockStorage struct {
	mu      sync.RWMutex
	rows    map[rowKey]*Preference
	closed  bool
	upserts int
	err     error // returned by every call when set
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		rows: make(map[rowKey]*Preference),
	}
}

func (m *MockStorage) Get(ctx context.Context, key string, scope Scope, ownerID string) (*Preference, error) {
	_, _ = ctx.Deadline()
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStorageUnavailable
	}
	if m.err != nil {
		return nil, m.err
	}

	pref, ok := m.rows[rowKey{key, scope, ownerID}]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *pref
	return &cp, nil
}

func (m *MockStorage) Upsert(ctx context.Context, pref *Preference) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStorageUnavailable
	}
	if m.err != nil {
		return m.err
	}

	cp := *pref
	m.rows[rowKey{pref.Key, pref.Scope, pref.OwnerID}] = &cp
	m.upserts++
	return nil
}

func (m *MockStorage) List(ctx context.Context, scope Scope, ownerID string) ([]*Preference, error) {
	_, _ = ctx.Deadline()
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStorageUnavailable
	}
	if m.err != nil {
		return nil, m.err
	}

	out := []*Preference{}
	for k, p := range m.rows {
		if k.scope == scope && k.owner == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// SetError makes every following call fail with err.
func (m *MockStorage) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// RowCount reports how many rows exist for key across all scopes.
func (m *MockStorage) RowCount(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for k := range m.rows {
		if k.key == key {
			n++
		}
	}
	return n
}

// Raw returns the stored value without any decoding.
func (m *MockStorage) Raw(key string, scope Scope, owner string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.rows[rowKey{key, scope, owner}]
	if !ok {
		return "", false
	}
	return p.Value, true
}

// MockCache implements the Cache interface for testing
type MockCache struct {
	mu     sync.RWMutex
	data   map[string]interface{}
	getErr error
	setErr error
	closed bool
}

// NewMockCache creates a new MockCache for testing.
func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string]interface{}),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (interface{}, error) {
	_, _ = ctx.Deadline()
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrCacheUnavailable
	}
	if m.getErr != nil {
		return nil, m.getErr
	}

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	_, _ = ctx.Deadline()
	_ = ttl

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrCacheUnavailable
	}
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; !ok {
		return ErrNotFound
	}
	delete(m.data, key)
	return nil
}

func (m *MockCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockCache) Put(key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// MockLogger implements the Logger interface for testing
type MockLogger struct {
	mu       sync.Mutex
	Messages []string
}

func (m *MockLogger) Debug(msg string, args ...any) { m.record("DEBUG", msg, args...) }
func (m *MockLogger) Info(msg string, args ...any)  { m.record("INFO", msg, args...) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.record("WARN", msg, args...) }
func (m *MockLogger) Error(msg string, args ...any) { m.record("ERROR", msg, args...) }

func (m *MockLogger) record(level, msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(args) > 0 {
		m.Messages = append(m.Messages, fmt.Sprintf("%s: %s %v", level, msg, args))
		return
	}
	m.Messages = append(m.Messages, fmt.Sprintf("%s: %s", level, msg))
}

func (m *MockLogger) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Messages)
}

// MockNotifier records every notified key.
type MockNotifier struct {
	mu   sync.Mutex
	Keys []string
	err  error
}

func (m *MockNotifier) Notify(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Keys = append(m.Keys, key)
	return m.err
}

// MockCounters returns fixed counts.
type MockCounters struct {
	Users, Files, Playlists, Scheduled, PastShows int
	Err                                           error
	PastShowsBefore                               time.Time
}

func (m *MockCounters) UserCount(context.Context) (int, error)     { return m.Users, m.Err }
func (m *MockCounters) FileCount(context.Context) (int, error)     { return m.Files, m.Err }
func (m *MockCounters) PlaylistCount(context.Context) (int, error) { return m.Playlists, m.Err }
func (m *MockCounters) ScheduledPlaylistCount(context.Context) (int, error) {
	return m.Scheduled, m.Err
}

func (m *MockCounters) PastShowCount(_ context.Context, before time.Time) (int, error) {
	m.PastShowsBefore = before
	return m.PastShows, m.Err
}

// MockChecker returns canned system-check lines.
type MockChecker struct {
	Lines []string
	Err   error
}

func (m *MockChecker) Check(context.Context) ([]string, error) { return m.Lines, m.Err }

// MockProbe returns a canned server header and records the probed URL.
type MockProbe struct {
	Server string
	Err    error
	URL    string
}

func (m *MockProbe) ServerSoftware(_ context.Context, url string) (string, error) {
	m.URL = url
	return m.Server, m.Err
}
