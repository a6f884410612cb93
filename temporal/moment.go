package temporal

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// Moment is an instant sampled once. Every method reports on that same
// instant, so a sequence of reads never straddles a second boundary.
type Moment struct {
	t time.Time
}

// Now samples the clock in the default location.
func Now() Moment {
	return Moment{t: time.Now().In(DefaultLocation())}
}

// At wraps epoch seconds in the default location.
func At(epoch int64) Moment {
	return Moment{t: time.Unix(epoch, 0).In(DefaultLocation())}
}

// ParseMoment reads a free-form date string. Strings without an explicit
// zone are taken to be in the default location.
func ParseMoment(s string) (Moment, error) {
	t, err := parseIn(s, DefaultLocation())
	if err != nil {
		return Moment{}, err
	}
	return Moment{t: t}, nil
}

func parseIn(s string, loc *time.Location) (time.Time, error) {
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	return t, nil
}

// In returns the same instant viewed from loc.
func (m Moment) In(loc *time.Location) Moment {
	return Moment{t: m.t.In(loc)}
}

func (m Moment) Time() time.Time { return m.t }

func (m Moment) Unix() int64 { return m.t.Unix() }

// String formats the moment with DateTimeLayout in its own location.
func (m Moment) String() string {
	return m.t.Format(DateTimeLayout)
}

// UTCString formats the moment with DateTimeLayout in UTC.
func (m Moment) UTCString() string {
	return m.t.UTC().Format(DateTimeLayout)
}

func (m Moment) Date() string {
	return m.t.Format(DateLayout)
}

func (m Moment) Clock() string {
	return m.t.Format(ClockLayout)
}

// DayEnd is midnight at the start of the following calendar day.
func (m Moment) DayEnd() time.Time {
	y, mo, d := m.t.Date()
	return time.Date(y, mo, d+1, 0, 0, 0, 0, m.t.Location())
}

// UTCOffset is the offset of the moment's zone from UTC, in seconds.
func (m Moment) UTCOffset() int {
	_, offset := m.t.Zone()
	return offset
}

// SecondsSinceMidnight counts from the last multiple of 86400 epoch seconds.
func (m Moment) SecondsSinceMidnight() int64 {
	return SecondsSinceLocalMidnight(m.Unix())
}

func (m Moment) SecondsUntilMidnight() int64 {
	return SecondsUntilNextLocalMidnight(m.Unix())
}

// ToLocalString formats epoch in the default location.
func ToLocalString(epoch int64) string {
	return At(epoch).String()
}

// ToUTCString formats epoch in UTC.
func ToUTCString(epoch int64) string {
	return At(epoch).UTCString()
}

// DateEndOfDay returns local midnight of the day after date.
func DateEndOfDay(date string) (time.Time, error) {
	m, err := ParseMoment(date)
	if err != nil {
		return time.Time{}, err
	}
	return m.DayEnd(), nil
}

// SecondsSinceLocalMidnight works on raw epoch seconds in 86400-second days.
// It ignores zone offsets and DST.
func SecondsSinceLocalMidnight(epoch int64) int64 {
	return epoch - (epoch/secondsPerDay)*secondsPerDay
}

// SecondsUntilNextLocalMidnight shares the day arithmetic of
// SecondsSinceLocalMidnight.
func SecondsUntilNextLocalMidnight(epoch int64) int64 {
	return ((epoch+secondsPerDay)/secondsPerDay)*secondsPerDay - epoch
}

// DiffSeconds parses both strings and returns t2 - t1 in seconds.
func DiffSeconds(t1, t2 string) (int64, error) {
	a, err := ParseMoment(t1)
	if err != nil {
		return 0, err
	}
	b, err := ParseMoment(t2)
	if err != nil {
		return 0, err
	}
	return b.Unix() - a.Unix(), nil
}
