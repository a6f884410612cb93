package stationprefs

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// TitleSession memoizes the station name for one client session so page
// titles can be rendered without a storage round trip.
type TitleSession struct {
	ID string

	store  *Store
	mu     sync.Mutex
	title  string
	cached bool
}

// NewTitleSession returns a session bound to s. An empty id gets a random one.
func (s *Store) NewTitleSession(id string) *TitleSession {
	if id == "" {
		id = uuid.NewString()
	}
	return &TitleSession{ID: id, store: s}
}

// GetCachedTitle returns "<station> - <label>", or just the label when no
// station name is set. The station name is read once and then memoized.
func (t *TitleSession) GetCachedTitle(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.cached {
		name, err := t.store.GetStationName(ctx)
		if err != nil {
			return "", err
		}
		t.title = name
		t.cached = true
	}

	return t.format(t.title), nil
}

// SetCachedTitle persists title as the station name and refreshes the memo.
func (t *TitleSession) SetCachedTitle(ctx context.Context, title string) error {
	if err := t.store.SetStationName(ctx, title); err != nil {
		return err
	}
	t.InvalidateTitle(title)
	return nil
}

// InvalidateTitle replaces the memoized station name without touching storage.
func (t *TitleSession) InvalidateTitle(title string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.title = title
	t.cached = true
}

func (t *TitleSession) format(name string) string {
	label := t.store.config.label
	if name == "" {
		return label
	}
	return name + " - " + label
}
