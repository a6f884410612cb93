package temporal

import (
	"fmt"
	"strconv"
	"strings"
)

// DurationFromMillis renders a track length as "HH:MM:SS.m", with hours,
// minutes and seconds padded to two digits and the milliseconds unpadded.
// 3661000 gives "01:01:01.0".
func DurationFromMillis(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}

	hours := ms / 3600000
	ms -= hours * 3600000
	minutes := ms / 60000
	ms -= minutes * 60000
	seconds := ms / 1000
	ms -= seconds * 1000

	return fmt.Sprintf("%s%02d:%02d:%02d.%d", sign, hours, minutes, seconds, ms)
}

// StripSeconds turns "HH:MM:SS" into "HH:MM". Anything without exactly three
// colon separated parts is returned unchanged.
func StripSeconds(s string) string {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return s
	}
	return parts[0] + ":" + parts[1]
}

// ParseDurationToSeconds converts "HH:MM:SS[.mmm]" to seconds, so
// "00:06:31.444" is 391.444. Every field must be unsigned decimal digits and
// only the seconds field may carry a fraction.
func ParseDurationToSeconds(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, s)
	}

	secField, frac, hasFrac := strings.Cut(parts[2], ".")
	fields := []string{parts[0], parts[1], secField}
	if hasFrac {
		fields = append(fields, frac)
	}

	var n [4]uint64
	for i, field := range fields {
		v, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedDuration, s)
		}
		n[i] = v
	}

	total := float64(n[0]*3600 + n[1]*60 + n[2])
	return total + float64(n[3])/1000, nil
}
