// Package temporal converts between epoch seconds, zoned date strings and
// duration strings as they are shown on the station's schedule pages.
//
// Functions that talk about "local" time use the process-wide default
// location, set once at startup from the station's timezone preference.
package temporal

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrMalformedDuration = errors.New("malformed duration")
	ErrUnknownTimezone   = errors.New("unknown timezone")
)

const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04:05"

	secondsPerDay = 86400
)

var defaultLocation atomic.Pointer[time.Location]

// DefaultLocation returns the zone used for local conversions, time.Local
// until SetDefaultLocation or SetDefaultTimezone is called.
func DefaultLocation() *time.Location {
	if loc := defaultLocation.Load(); loc != nil {
		return loc
	}
	return time.Local
}

// SetDefaultLocation replaces the default zone. A nil loc restores time.Local.
func SetDefaultLocation(loc *time.Location) {
	defaultLocation.Store(loc)
}

// SetDefaultTimezone loads an IANA zone name and makes it the default.
// An empty name restores time.Local.
func SetDefaultTimezone(name string) error {
	if name == "" {
		SetDefaultLocation(nil)
		return nil
	}
	loc, err := LoadLocation(name)
	if err != nil {
		return err
	}
	SetDefaultLocation(loc)
	return nil
}

// LoadLocation wraps time.LoadLocation with ErrUnknownTimezone.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownTimezone, name, err)
	}
	return loc, nil
}

// LocalUTCOffsetSeconds is the default zone's offset from UTC at epoch,
// e.g. -14400 for UTC-4.
func LocalUTCOffsetSeconds(epoch int64) int {
	return At(epoch).UTCOffset()
}

// OffsetHours truncates an offset in seconds to whole hours. -16200 gives -4.
func OffsetHours(offset int) int {
	return offset / 3600
}

// OffsetMinutes returns the minutes left after OffsetHours, with the offset's
// sign. -16200 gives -30.
func OffsetMinutes(offset int) int {
	return (offset % 3600) / 60
}
