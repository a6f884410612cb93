package stationprefs

import (
	"context"
	"strconv"
	"time"
)

// importThrottle is the minimum age of the stored import timestamp before it is rewritten.
const importThrottle = 5 * time.Second

func (s *Store) GetStationName(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingStationName)
}

// SetStationName writes the station name and notifies schedule consumers.
// Use TitleSession.SetCachedTitle when a session memo must follow the change.
func (s *Store) SetStationName(ctx context.Context, name string) error {
	return s.SetSetting(ctx, SettingStationName, name)
}

func (s *Store) GetShowsPopulatedUntil(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingShowsPopulatedUntil)
}

func (s *Store) SetShowsPopulatedUntil(ctx context.Context, timestamp string) error {
	return s.SetSetting(ctx, SettingShowsPopulatedUntil, timestamp)
}

func (s *Store) GetDefaultFade(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingDefaultFade)
}

func (s *Store) SetDefaultFade(ctx context.Context, fade string) error {
	return s.SetSetting(ctx, SettingDefaultFade, fade)
}

func (s *Store) GetStreamLabelFormat(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingStreamLabelFormat)
}

// SetStreamLabelFormat writes the label format and notifies schedule consumers.
func (s *Store) SetStreamLabelFormat(ctx context.Context, format string) error {
	return s.SetSetting(ctx, SettingStreamLabelFormat, format)
}

// SoundCloud integration.

func (s *Store) GetSoundCloudAutoUploadRecordedShow(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingSoundCloudAutoUpload)
}

func (s *Store) SetSoundCloudAutoUploadRecordedShow(ctx context.Context, upload string) error {
	return s.SetSetting(ctx, SettingSoundCloudAutoUpload, upload)
}

func (s *Store) GetSoundCloudUser(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingSoundCloudUser)
}

func (s *Store) SetSoundCloudUser(ctx context.Context, user string) error {
	return s.SetSetting(ctx, SettingSoundCloudUser, user)
}

func (s *Store) GetSoundCloudPassword(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingSoundCloudPassword)
}

// SetSoundCloudPassword ignores an empty password so a blank form field keeps the old one.
func (s *Store) SetSoundCloudPassword(ctx context.Context, password string) error {
	return s.SetSetting(ctx, SettingSoundCloudPassword, password)
}

func (s *Store) GetSoundCloudTags(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingSoundCloudTags)
}

func (s *Store) SetSoundCloudTags(ctx context.Context, tags string) error {
	return s.SetSetting(ctx, SettingSoundCloudTags, tags)
}

func (s *Store) GetSoundCloudGenre(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingSoundCloudGenre)
}

func (s *Store) SetSoundCloudGenre(ctx context.Context, genre string) error {
	return s.SetSetting(ctx, SettingSoundCloudGenre, genre)
}

func (s *Store) GetSoundCloudTrackType(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingSoundCloudTrackType)
}

func (s *Store) SetSoundCloudTrackType(ctx context.Context, trackType string) error {
	return s.SetSetting(ctx, SettingSoundCloudTrackType, trackType)
}

func (s *Store) GetSoundCloudLicense(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingSoundCloudLicense)
}

func (s *Store) SetSoundCloudLicense(ctx context.Context, license string) error {
	return s.SetSetting(ctx, SettingSoundCloudLicense, license)
}

func (s *Store) GetSoundCloudUploadOption(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingSoundCloudUploadOption)
}

func (s *Store) SetSoundCloudUploadOption(ctx context.Context, option string) error {
	return s.SetSetting(ctx, SettingSoundCloudUploadOption, option)
}

func (s *Store) GetSoundCloudDownloadable(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingSoundCloudDownloadable)
}

func (s *Store) SetSoundCloudDownloadable(ctx context.Context, downloadable string) error {
	return s.SetSetting(ctx, SettingSoundCloudDownloadable, downloadable)
}

// Station metadata and registration.

// GetAllowThirdPartyAPI returns "0" until the setting is written.
func (s *Store) GetAllowThirdPartyAPI(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingThirdPartyAPI)
}

func (s *Store) SetAllowThirdPartyAPI(ctx context.Context, allow string) error {
	return s.SetSetting(ctx, SettingThirdPartyAPI, allow)
}

func (s *Store) GetPhone(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingPhone)
}

func (s *Store) SetPhone(ctx context.Context, phone string) error {
	return s.SetSetting(ctx, SettingPhone, phone)
}

func (s *Store) GetEmail(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingEmail)
}

func (s *Store) SetEmail(ctx context.Context, email string) error {
	return s.SetSetting(ctx, SettingEmail, email)
}

func (s *Store) GetStationWebSite(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingStationWebSite)
}

func (s *Store) SetStationWebSite(ctx context.Context, site string) error {
	return s.SetSetting(ctx, SettingStationWebSite, site)
}

func (s *Store) GetSupportFeedback(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingSupportFeedback)
}

func (s *Store) SetSupportFeedback(ctx context.Context, feedback string) error {
	return s.SetSetting(ctx, SettingSupportFeedback, feedback)
}

func (s *Store) GetPublicise(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingPublicise)
}

func (s *Store) SetPublicise(ctx context.Context, publicise string) error {
	return s.SetSetting(ctx, SettingPublicise, publicise)
}

func (s *Store) GetRegistered(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingRegistered)
}

func (s *Store) SetRegistered(ctx context.Context, registered string) error {
	return s.SetSetting(ctx, SettingRegistered, registered)
}

func (s *Store) GetStationCountry(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingStationCountry)
}

func (s *Store) SetStationCountry(ctx context.Context, country string) error {
	return s.SetSetting(ctx, SettingStationCountry, country)
}

func (s *Store) GetStationCity(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingStationCity)
}

func (s *Store) SetStationCity(ctx context.Context, city string) error {
	return s.SetSetting(ctx, SettingStationCity, city)
}

func (s *Store) GetStationDescription(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingStationDescription)
}

func (s *Store) SetStationDescription(ctx context.Context, description string) error {
	return s.SetSetting(ctx, SettingStationDescription, description)
}

// GetTimezone returns the stored display timezone name, e.g. "America/Toronto".
func (s *Store) GetTimezone(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingTimezone)
}

// SetTimezone only persists the name. Applying it to time conversions is up to the caller.
func (s *Store) SetTimezone(ctx context.Context, timezone string) error {
	return s.SetSetting(ctx, SettingTimezone, timezone)
}

// GetStationLogo returns the decoded logo image, or nil when none is stored.
func (s *Store) GetStationLogo(ctx context.Context) ([]byte, error) {
	return s.getBytes(ctx, SettingStationLogo)
}

// SetStationLogo stores image base64-encoded. An empty image is ignored.
func (s *Store) SetStationLogo(ctx context.Context, image []byte) error {
	return s.setBytes(ctx, SettingStationLogo, image)
}

func (s *Store) GetUniqueID(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingUniqueID)
}

// GetRemindMeDate returns the epoch at which registration should be offered again.
func (s *Store) GetRemindMeDate(ctx context.Context) (int64, error) {
	n, err := s.getInt(ctx, SettingRemindMe)
	return int64(n), err
}

// SetRemindMeDate stores local midnight one week after now.
func (s *Store) SetRemindMeDate(ctx context.Context, now time.Time) error {
	weekAfter := time.Date(now.Year(), now.Month(), now.Day()+7, 0, 0, 0, 0, now.Location())
	return s.SetSetting(ctx, SettingRemindMe, strconv.FormatInt(weekAfter.Unix(), 10))
}

func (s *Store) GetImportTimestamp(ctx context.Context) (int64, error) {
	n, err := s.getInt(ctx, SettingImportTimestamp)
	return int64(n), err
}

// SetImportTimestamp records now unless the stored timestamp is less than
// five seconds old, so bursts of imports cost one write.
func (s *Store) SetImportTimestamp(ctx context.Context, now time.Time) error {
	last, err := s.GetImportTimestamp(ctx)
	if err != nil {
		return err
	}
	if last+int64(importThrottle/time.Second) >= now.Unix() {
		return nil
	}
	return s.SetSetting(ctx, SettingImportTimestamp, strconv.FormatInt(now.Unix(), 10))
}

// Streaming and plan limits.

func (s *Store) GetStreamType(ctx context.Context) ([]string, error) {
	return s.getList(ctx, SettingStreamType)
}

func (s *Store) SetStreamType(ctx context.Context, types []string) error {
	return s.setList(ctx, SettingStreamType, types)
}

func (s *Store) GetStreamBitrate(ctx context.Context) ([]string, error) {
	return s.getList(ctx, SettingStreamBitrate)
}

func (s *Store) SetStreamBitrate(ctx context.Context, bitrates []string) error {
	return s.setList(ctx, SettingStreamBitrate, bitrates)
}

func (s *Store) GetPrivacyPolicyCheck(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingPrivacyPolicy)
}

func (s *Store) SetPrivacyPolicyCheck(ctx context.Context, flag string) error {
	return s.SetSetting(ctx, SettingPrivacyPolicy, flag)
}

func (s *Store) GetNumOfStreams(ctx context.Context) (int, error) {
	return s.getInt(ctx, SettingNumOfStreams)
}

func (s *Store) SetNumOfStreams(ctx context.Context, n int) error {
	return s.setInt(ctx, SettingNumOfStreams, n)
}

func (s *Store) GetMaxBitrate(ctx context.Context) (int, error) {
	return s.getInt(ctx, SettingMaxBitrate)
}

func (s *Store) SetMaxBitrate(ctx context.Context, bitrate int) error {
	return s.setInt(ctx, SettingMaxBitrate, bitrate)
}

func (s *Store) GetPlanLevel(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingPlanLevel)
}

func (s *Store) SetPlanLevel(ctx context.Context, plan string) error {
	return s.SetSetting(ctx, SettingPlanLevel, plan)
}

func (s *Store) GetTrialEndingDate(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingTrialEndDate)
}

func (s *Store) SetTrialEndingDate(ctx context.Context, date string) error {
	return s.SetSetting(ctx, SettingTrialEndDate, date)
}

// GetEnableStreamConf returns "true" until the setting is written.
func (s *Store) GetEnableStreamConf(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingEnableStreamConf)
}

func (s *Store) SetEnableStreamConf(ctx context.Context, enable string) error {
	return s.SetSetting(ctx, SettingEnableStreamConf, enable)
}

func (s *Store) GetSystemVersion(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingSystemVersion)
}

// GetWeekStartDay returns "0" (Sunday) until the setting is written.
func (s *Store) GetWeekStartDay(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingWeekStartDay)
}

func (s *Store) SetWeekStartDay(ctx context.Context, day string) error {
	return s.SetSetting(ctx, SettingWeekStartDay, day)
}

// Per-identity calendar and library preferences.

// GetCalendarTimeScale returns the current identity's calendar view (day, week, month).
func (s *Store) GetCalendarTimeScale(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingCalendarTimeScale)
}

func (s *Store) SetCalendarTimeScale(ctx context.Context, scale string) error {
	return s.SetSetting(ctx, SettingCalendarTimeScale, scale)
}

func (s *Store) GetCalendarTimeInterval(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingCalendarTimeInterval)
}

func (s *Store) SetCalendarTimeInterval(ctx context.Context, interval string) error {
	return s.SetSetting(ctx, SettingCalendarTimeInterval, interval)
}

// GetLibraryNumEntries returns how many library rows the current identity shows per page.
func (s *Store) GetLibraryNumEntries(ctx context.Context) (string, error) {
	return s.GetSetting(ctx, SettingLibraryNumEntries)
}

func (s *Store) SetLibraryNumEntries(ctx context.Context, entries string) error {
	return s.SetSetting(ctx, SettingLibraryNumEntries, entries)
}
