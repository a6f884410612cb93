package stationprefs

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// versionURLKey names the check line whose URL identifies the web front end.
const versionURLKey = "AIRTIME_VERSION_URL"

var whitespaceRun = regexp.MustCompile(`\s+`)

// InfoEntry is one KEY : value line of a SystemInfo report.
type InfoEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SystemInfo is an ordered key/value report about the station and its host.
type SystemInfo struct {
	entries []InfoEntry
	index   map[string]int
}

func newSystemInfo() *SystemInfo {
	return &SystemInfo{index: make(map[string]int)}
}

// Put sets key to value. A key that already exists keeps its position.
func (si *SystemInfo) Put(key, value string) {
	if i, ok := si.index[key]; ok {
		si.entries[i].Value = value
		return
	}
	si.index[key] = len(si.entries)
	si.entries = append(si.entries, InfoEntry{Key: key, Value: value})
}

// Value returns the value stored under key.
func (si *SystemInfo) Value(key string) (string, bool) {
	i, ok := si.index[key]
	if !ok {
		return "", false
	}
	return si.entries[i].Value, true
}

// Entries returns the report lines in order.
func (si *SystemInfo) Entries() []InfoEntry {
	out := make([]InfoEntry, len(si.entries))
	copy(out, si.entries)
	return out
}

// Map returns the report as an unordered map.
func (si *SystemInfo) Map() map[string]string {
	m := make(map[string]string, len(si.entries))
	for _, e := range si.entries {
		m[e.Key] = e.Value
	}
	return m
}

// String renders the text form: a leading newline, then one "KEY : value"
// line per non-empty entry.
func (si *SystemInfo) String() string {
	var b strings.Builder
	b.WriteString("\n")
	for _, e := range si.entries {
		if e.Value == "" {
			continue
		}
		b.WriteString(e.Key)
		b.WriteString(" : ")
		b.WriteString(e.Value)
		b.WriteString("\n")
	}
	return b.String()
}

// MarshalJSON encodes the entries as an ordered array.
func (si *SystemInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(si.entries)
}

// BuildSystemInfo gathers host check lines, station metadata, the web server
// software and content counters into one report. Station values overwrite
// check lines of the same key. With asStructured the report also carries
// PROMOTE and LOGOIMG, which the text form never shows.
func (s *Store) BuildSystemInfo(ctx context.Context, asStructured bool) (*SystemInfo, error) {
	info := newSystemInfo()

	if s.config.checker != nil {
		lines, err := s.config.checker.Check(ctx)
		if err != nil {
			s.config.logger.Warn("System check failed", "error", err)
		}
		for _, line := range lines {
			if key, value, ok := parseCheckLine(line); ok {
				info.Put(key, value)
			}
		}
	}

	station := []struct {
		key string
		def Setting
	}{
		{"STATION_NAME", SettingStationName},
		{"PHONE", SettingPhone},
		{"EMAIL", SettingEmail},
		{"STATION_WEB_SITE", SettingStationWebSite},
		{"STATION_COUNTRY", SettingStationCountry},
		{"STATION_CITY", SettingStationCity},
		{"STATION_DESCRIPTION", SettingStationDescription},
	}
	for _, f := range station {
		value, err := s.GetSetting(ctx, f.def)
		if err != nil {
			return nil, err
		}
		info.Put(f.key, value)
	}

	if url, ok := info.Value(versionURLKey); ok && s.config.probe != nil {
		if i := strings.Index(url, "/api/"); i >= 0 {
			url = url[:i]
		}
		server, err := s.config.probe.ServerSoftware(ctx, strings.TrimSpace(url))
		if err != nil {
			s.config.logger.Warn("Failed to probe web server", "url", url, "error", err)
		} else {
			info.Put("WEB_SERVER", server)
		}
	}

	if s.config.counters != nil {
		if err := s.putCounters(ctx, info); err != nil {
			return nil, err
		}
	}

	uniqueID, err := s.GetUniqueID(ctx)
	if err != nil {
		return nil, err
	}
	info.Put("UNIQUE_ID", uniqueID)

	if asStructured {
		promote, err := s.GetPublicise(ctx)
		if err != nil {
			return nil, err
		}
		info.Put("PROMOTE", promote)

		logo, err := s.GetSetting(ctx, SettingStationLogo)
		if err != nil {
			return nil, err
		}
		info.Put("LOGOIMG", logo)
	}

	return info, nil
}

func (s *Store) putCounters(ctx context.Context, info *SystemInfo) error {
	c := s.config.counters
	counts := []struct {
		key string
		fn  func(context.Context) (int, error)
	}{
		{"NUM_OF_USERS", c.UserCount},
		{"NUM_OF_SONGS", c.FileCount},
		{"NUM_OF_PLAYLISTS", c.PlaylistCount},
		{"NUM_OF_SCHEDULED_PLAYLISTS", c.ScheduledPlaylistCount},
		{"NUM_OF_PAST_SHOWS", func(ctx context.Context) (int, error) {
			return c.PastShowCount(ctx, s.now())
		}},
	}
	for _, f := range counts {
		n, err := f.fn(ctx)
		if err != nil {
			return fmt.Errorf("count %s: %w", strings.ToLower(f.key), err)
		}
		info.Put(f.key, strconv.Itoa(n))
	}
	return nil
}

// parseCheckLine turns "Key Name = value" into ("KEY_NAME", " value").
// Runs of whitespace collapse to one space. Lines without '=' are dropped.
func parseCheckLine(line string) (string, string, bool) {
	line = whitespaceRun.ReplaceAllString(line, " ")
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(parts[0]), " ", "_"))
	return key, parts[1], true
}
