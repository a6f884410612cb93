package stationprefs

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// Codec describes how a setting's string value is interpreted.
type Codec int

const (
	// CodecString stores the value as given.
	CodecString Codec = iota
	// CodecInt stores a base-10 integer.
	CodecInt
	// CodecList stores a comma-joined list.
	CodecList
	// CodecBase64 stores binary data as standard base64.
	CodecBase64
)

// Setting declares one named station setting.
type Setting struct {
	// Name is the logical name used by tools, e.g. "station-name".
	Name string
	// Key is the persisted preference key.
	Key string
	// Scope is ScopeUser for per-identity settings.
	Scope Scope
	// Default replaces an empty stored value on read.
	Default string
	// Codec validates writes and decodes typed reads.
	Codec Codec
	// Notify signals the Notifier after every successful write.
	Notify bool
	// Sensitive values are encrypted at rest when the Store has encryption.
	Sensitive bool
	// SkipEmpty turns writes of an empty value into no-ops.
	SkipEmpty bool
}

// Station settings. User-scoped ones are marked with Scope: ScopeUser.
var (
	SettingStationName         = Setting{Name: "station-name", Key: "station_name", Notify: true}
	SettingShowsPopulatedUntil = Setting{Name: "shows-populated-until", Key: "shows_populated_until"}
	SettingDefaultFade         = Setting{Name: "default-fade", Key: "default_fade"}
	SettingStreamLabelFormat   = Setting{Name: "stream-label-format", Key: "stream_label_format", Notify: true}

	SettingSoundCloudAutoUpload   = Setting{Name: "soundcloud-auto-upload-recorded-show", Key: "soundcloud_auto_upload_recorded_show"}
	SettingSoundCloudUser         = Setting{Name: "soundcloud-user", Key: "soundcloud_user"}
	SettingSoundCloudPassword     = Setting{Name: "soundcloud-password", Key: "soundcloud_password", Sensitive: true, SkipEmpty: true}
	SettingSoundCloudTags         = Setting{Name: "soundcloud-tags", Key: "soundcloud_tags"}
	SettingSoundCloudGenre        = Setting{Name: "soundcloud-genre", Key: "soundcloud_genre"}
	SettingSoundCloudTrackType    = Setting{Name: "soundcloud-track-type", Key: "soundcloud_tracktype"}
	SettingSoundCloudLicense      = Setting{Name: "soundcloud-license", Key: "soundcloud_license"}
	SettingSoundCloudUploadOption = Setting{Name: "soundcloud-upload-option", Key: "soundcloud_upload_option"}
	SettingSoundCloudDownloadable = Setting{Name: "soundcloud-downloadable", Key: "soundcloud_downloadable"}

	SettingThirdPartyAPI      = Setting{Name: "third-party-api", Key: "third_party_api", Default: "0"}
	SettingPhone              = Setting{Name: "phone", Key: "phone"}
	SettingEmail              = Setting{Name: "email", Key: "email"}
	SettingStationWebSite     = Setting{Name: "station-website", Key: "station_website"}
	SettingSupportFeedback    = Setting{Name: "support-feedback", Key: "support_feedback"}
	SettingPublicise          = Setting{Name: "publicise", Key: "publicise"}
	SettingRegistered         = Setting{Name: "registered", Key: "registered"}
	SettingStationCountry     = Setting{Name: "country", Key: "country"}
	SettingStationCity        = Setting{Name: "city", Key: "city"}
	SettingStationDescription = Setting{Name: "description", Key: "description"}
	SettingTimezone           = Setting{Name: "timezone", Key: "timezone"}
	SettingStationLogo        = Setting{Name: "logo-image", Key: "logoImage", Codec: CodecBase64, SkipEmpty: true}
	SettingUniqueID           = Setting{Name: "unique-id", Key: "uniqueId"}
	SettingRemindMe           = Setting{Name: "remind-me", Key: "remindme", Codec: CodecInt}
	SettingImportTimestamp    = Setting{Name: "import-timestamp", Key: "import_timestamp", Codec: CodecInt}
	SettingStreamType         = Setting{Name: "stream-type", Key: "stream_type", Codec: CodecList}
	SettingStreamBitrate      = Setting{Name: "stream-bitrate", Key: "stream_bitrate", Codec: CodecList}
	SettingPrivacyPolicy      = Setting{Name: "privacy-policy", Key: "privacy_policy"}
	SettingNumOfStreams       = Setting{Name: "num-of-streams", Key: "num_of_streams", Codec: CodecInt}
	SettingMaxBitrate         = Setting{Name: "max-bitrate", Key: "max_bitrate", Codec: CodecInt}
	SettingPlanLevel          = Setting{Name: "plan-level", Key: "plan_level"}
	SettingTrialEndDate       = Setting{Name: "trial-end-date", Key: "trial_end_date"}
	SettingEnableStreamConf   = Setting{Name: "enable-stream-conf", Key: "enable_stream_conf", Default: "true"}
	SettingSystemVersion      = Setting{Name: "system-version", Key: "system_version"}
	SettingWeekStartDay       = Setting{Name: "week-start-day", Key: "week_start_day", Default: "0"}

	SettingCalendarTimeScale    = Setting{Name: "calendar-time-scale", Key: "calendar_time_scale", Scope: ScopeUser}
	SettingCalendarTimeInterval = Setting{Name: "calendar-time-interval", Key: "calendar_time_interval", Scope: ScopeUser}
	SettingLibraryNumEntries    = Setting{Name: "library-num-entries", Key: "library_num_entries", Scope: ScopeUser}
)

var settingsTable = []Setting{
	SettingStationName,
	SettingShowsPopulatedUntil,
	SettingDefaultFade,
	SettingStreamLabelFormat,
	SettingSoundCloudAutoUpload,
	SettingSoundCloudUser,
	SettingSoundCloudPassword,
	SettingSoundCloudTags,
	SettingSoundCloudGenre,
	SettingSoundCloudTrackType,
	SettingSoundCloudLicense,
	SettingSoundCloudUploadOption,
	SettingSoundCloudDownloadable,
	SettingThirdPartyAPI,
	SettingPhone,
	SettingEmail,
	SettingStationWebSite,
	SettingSupportFeedback,
	SettingPublicise,
	SettingRegistered,
	SettingStationCountry,
	SettingStationCity,
	SettingStationDescription,
	SettingTimezone,
	SettingStationLogo,
	SettingUniqueID,
	SettingRemindMe,
	SettingImportTimestamp,
	SettingStreamType,
	SettingStreamBitrate,
	SettingPrivacyPolicy,
	SettingNumOfStreams,
	SettingMaxBitrate,
	SettingPlanLevel,
	SettingTrialEndDate,
	SettingEnableStreamConf,
	SettingSystemVersion,
	SettingWeekStartDay,
	SettingCalendarTimeScale,
	SettingCalendarTimeInterval,
	SettingLibraryNumEntries,
}

// Settings returns a copy of the settings table in declaration order.
func Settings() []Setting {
	out := make([]Setting, len(settingsTable))
	copy(out, settingsTable)
	return out
}

// LookupSetting finds a setting by logical name or persisted key.
func LookupSetting(nameOrKey string) (Setting, bool) {
	for _, def := range settingsTable {
		if def.Name == nameOrKey || def.Key == nameOrKey {
			return def, true
		}
	}
	return Setting{}, false
}

// GetSetting reads def, applying its default and decrypting sensitive values.
func (s *Store) GetSetting(ctx context.Context, def Setting) (string, error) {
	value, err := s.Get(ctx, def.Key, def.Scope == ScopeUser)
	if err != nil {
		return "", err
	}
	if value == "" {
		return def.Default, nil
	}
	if def.Sensitive && s.config.encryption != nil {
		plain, err := s.config.encryption.Decrypt(value)
		if err != nil {
			return "", fmt.Errorf("%w: decrypt %s: %v", ErrSerialization, def.Key, err)
		}
		return plain, nil
	}
	return value, nil
}

// SetSetting validates and writes value for def, then notifies if def asks for it.
func (s *Store) SetSetting(ctx context.Context, def Setting, value string) error {
	if def.SkipEmpty && value == "" {
		return nil
	}
	if err := validateValue(value, def); err != nil {
		return err
	}

	stored := value
	if def.Sensitive && s.config.encryption != nil {
		enc, err := s.config.encryption.Encrypt(value)
		if err != nil {
			return fmt.Errorf("%w: encrypt %s: %v", ErrSerialization, def.Key, err)
		}
		stored = enc
	}

	if err := s.Set(ctx, def.Key, stored, def.Scope == ScopeUser); err != nil {
		return err
	}

	if def.Notify {
		s.notify(ctx, def.Key)
	}
	return nil
}

func (s *Store) getInt(ctx context.Context, def Setting) (int, error) {
	value, err := s.GetSetting(ctx, def)
	if err != nil || value == "" {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s holds non-integer %q", ErrSerialization, def.Key, value)
	}
	return n, nil
}

func (s *Store) setInt(ctx context.Context, def Setting, n int) error {
	return s.SetSetting(ctx, def, strconv.Itoa(n))
}

func (s *Store) getList(ctx context.Context, def Setting) ([]string, error) {
	value, err := s.GetSetting(ctx, def)
	if err != nil || value == "" {
		return nil, err
	}
	return strings.Split(value, ","), nil
}

func (s *Store) setList(ctx context.Context, def Setting, items []string) error {
	return s.SetSetting(ctx, def, strings.Join(items, ","))
}

func (s *Store) getBytes(ctx context.Context, def Setting) ([]byte, error) {
	value, err := s.GetSetting(ctx, def)
	if err != nil || value == "" {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s holds invalid base64: %v", ErrSerialization, def.Key, err)
	}
	return data, nil
}

func (s *Store) setBytes(ctx context.Context, def Setting, data []byte) error {
	if len(data) == 0 && def.SkipEmpty {
		return nil
	}
	return s.SetSetting(ctx, def, base64.StdEncoding.EncodeToString(data))
}

func (s *Store) notify(ctx context.Context, key string) {
	if s.config.notifier == nil {
		return
	}
	if err := s.config.notifier.Notify(ctx, key); err != nil {
		s.config.logger.Warn("Failed to notify preference change", "key", key, "error", err)
	}
}
