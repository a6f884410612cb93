// Package stationprefs defines the core types used by the preference store.
package stationprefs

import (
	"fmt"
	"time"
)

// Scope tells whether a preference applies system-wide or to one identity.
type Scope int

const (
	// ScopeSystem marks a station-wide preference. Its OwnerID is always empty.
	ScopeSystem Scope = iota
	// ScopeUser marks a per-identity override. Its OwnerID is always set.
	ScopeUser
)

// String returns the lowercase name of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeSystem:
		return "system"
	case ScopeUser:
		return "user"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// Preference is the persisted unit: one row per (Key, Scope, OwnerID).
type Preference struct {
	// Key identifies the preference within its scope.
	Key string `json:"key"`
	// Scope is ScopeSystem or ScopeUser.
	Scope Scope `json:"scope"`
	// OwnerID is the identity owning a user-scoped row, empty for system rows.
	OwnerID string `json:"owner_id,omitempty"`
	// Value is the stored string. Structured data is serialized by the caller.
	Value string `json:"value"`
	// UpdatedAt records the last write.
	UpdatedAt time.Time `json:"updated_at"`
}

// Config holds the internal configuration of a Store instance.
// It is populated by applying functional Options when a Store is created with New().
type Config struct {
	storage    Storage
	cache      Cache
	cacheTTL   time.Duration
	logger     Logger
	identity   IdentityResolver
	notifier   Notifier
	encryption EncryptionManager
	counters   Counters
	checker    SystemChecker
	probe      ServerProbe
	clock      func() time.Time
	label      string
}

// Option configures a Store. Options are passed to New().
type Option func(*Config)

// WithStorage sets the persistence backend. Without it every read and write
// fails with ErrStorageUnavailable.
func WithStorage(s Storage) Option {
	return func(c *Config) {
		c.storage = s
	}
}

// WithCache sets an optional read-through cache consulted by Get.
func WithCache(cache Cache) Option {
	return func(c *Config) {
		c.cache = cache
	}
}

// WithCacheTTL overrides how long cached values live. The default is 24 hours.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.cacheTTL = ttl
	}
}

// WithLogger sets the Logger used for cache and notification failures.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// WithIdentityResolver replaces the default context-based identity lookup.
func WithIdentityResolver(r IdentityResolver) Option {
	return func(c *Config) {
		c.identity = r
	}
}

// WithNotifier sets the collaborator told about writes to settings that
// downstream schedule consumers depend on.
func WithNotifier(n Notifier) Option {
	return func(c *Config) {
		c.notifier = n
	}
}

// WithEncryption enables encryption at rest for settings marked Sensitive.
func WithEncryption(e EncryptionManager) Option {
	return func(c *Config) {
		c.encryption = e
	}
}

// WithCounters sets the counters reported by BuildSystemInfo.
func WithCounters(counters Counters) Option {
	return func(c *Config) {
		c.counters = counters
	}
}

// WithSystemChecker sets the source of raw key=value system-check lines.
func WithSystemChecker(sc SystemChecker) Option {
	return func(c *Config) {
		c.checker = sc
	}
}

// WithServerProbe sets the probe used to report the web server software.
func WithServerProbe(p ServerProbe) Option {
	return func(c *Config) {
		c.probe = p
	}
}

// WithClock overrides time.Now. Useful in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.clock = now
	}
}

// WithProductLabel overrides the label appended to the station name in titles.
func WithProductLabel(label string) Option {
	return func(c *Config) {
		c.label = label
	}
}
