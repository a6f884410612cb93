package cache

import (
	"fmt"

	"github.com/CreativeUnicorns/stationprefs"
)

// Driver names accepted by Open.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config selects a cache for Open.
type Config struct {
	Driver string
	Redis  RedisOptions
}

// Open builds the cache named by cfg.Driver. It returns nil, nil for no cache.
func Open(cfg Config) (stationprefs.Cache, error) {
	switch cfg.Driver {
	case "", DriverNone:
		return nil, nil
	case DriverMemory:
		return NewMemoryCache(), nil
	case DriverRedis:
		c, err := NewRedisCache(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown cache driver %q", stationprefs.ErrInvalidInput, cfg.Driver)
	}
}
