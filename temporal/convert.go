package temporal

import (
	"strings"
	"time"
)

// ConvertToUTCDateTime reads s as a wall clock time in zone and returns the
// instant in UTC.
func ConvertToUTCDateTime(s, zone string) (time.Time, error) {
	loc, err := LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	t, err := parseIn(s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ConvertToSpecificTimezoneDateTime reads s as UTC and returns it in zone.
func ConvertToSpecificTimezoneDateTime(s, zone string) (time.Time, error) {
	loc, err := LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	t, err := parseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// ConvertToLocalDateTime reads s as UTC and returns it in the default location.
func ConvertToLocalDateTime(s string) (time.Time, error) {
	t, err := parseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(DefaultLocation()), nil
}

// ConvertToLocalDateTimeString is ConvertToLocalDateTime formatted with
// layout, or DateTimeLayout when layout is empty.
func ConvertToLocalDateTimeString(s, layout string) (string, error) {
	t, err := ConvertToLocalDateTime(s)
	if err != nil {
		return "", err
	}
	if layout == "" {
		layout = DateTimeLayout
	}
	return t.Format(layout), nil
}

// DateFromTimestamp returns the date half of a "date time" string.
func DateFromTimestamp(s string) string {
	date, _, _ := strings.Cut(s, " ")
	return date
}

// TimeFromTimestamp returns the time half of a "date time" string, or "" when
// there is none.
func TimeFromTimestamp(s string) string {
	_, clock, _ := strings.Cut(s, " ")
	clock, _, _ = strings.Cut(clock, " ")
	return clock
}
