// errors.go
package stationprefs

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input parameters")
	ErrInvalidKey         = errors.New("invalid preference key")
	ErrInvalidValue       = errors.New("invalid preference value")
	ErrNotFound           = errors.New("preference not found")
	ErrUnknownSetting     = errors.New("unknown setting")
	ErrStorageUnavailable = errors.New("storage backend unavailable")
	ErrCacheUnavailable   = errors.New("cache backend unavailable")
	ErrSerialization      = errors.New("serialization failure")
)
