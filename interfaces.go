// Package stationprefs defines interfaces for storage, caching, logging and the
// external collaborators used by the preference store.
package stationprefs

import (
	"context"
	"time"
)

// Storage defines the methods required for a storage backend.
// Upsert must be atomic with respect to (Key, Scope, OwnerID).
type Storage interface {
	Get(ctx context.Context, key string, scope Scope, ownerID string) (*Preference, error)
	Upsert(ctx context.Context, pref *Preference) error
	List(ctx context.Context, scope Scope, ownerID string) ([]*Preference, error)
	Close() error
}

// Cache defines the methods required for a caching backend.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Logger defines the methods required for logging within the preference store.
// The args should be alternating key-value pairs, similar to slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// IdentityResolver returns the identity on whose behalf a call runs.
// ok is false in daemon and unauthenticated contexts.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context) (id string, ok bool)
}

// Notifier is told that the value behind key changed.
type Notifier interface {
	Notify(ctx context.Context, key string) error
}

// Counters are owned by other subsystems and only reported here.
type Counters interface {
	UserCount(ctx context.Context) (int, error)
	FileCount(ctx context.Context) (int, error)
	PlaylistCount(ctx context.Context) (int, error)
	ScheduledPlaylistCount(ctx context.Context) (int, error)
	PastShowCount(ctx context.Context, before time.Time) (int, error)
}

// SystemChecker produces raw key=value lines describing the host.
type SystemChecker interface {
	Check(ctx context.Context) ([]string, error)
}

// ServerProbe reports the server software answering at url.
type ServerProbe interface {
	ServerSoftware(ctx context.Context, url string) (string, error)
}

// EncryptionManager encrypts sensitive values before they reach storage.
type EncryptionManager interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(encrypted string) (string, error)
}
