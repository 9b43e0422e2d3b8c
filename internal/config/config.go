package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote vCard imports.
var UserAgent = "Tag-Prompt/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Tag Prompt"
	AppID             = "com.github.tartampluch.tagprompt"
	BinaryName        = "tagprompt"
	KeyringService    = "com.github.tartampluch.tagprompt"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	StateFileName     = "last_shown"
	DataFileName      = "data.json"
	SettingsFileName  = "config"
	SettingsFileType  = "yaml"
	EnvPrefix         = "TAGPROMPT"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and the prompt state file.
	FilePermUserRW fs.FileMode = 0600

	// FilePermShared represents -rw-r--r--. Used for the data file,
	// which holds nothing sensitive.
	FilePermShared fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig        = "config"
	FlagData          = "data"
	FlagDebug         = "debug"
	FlagNoColor       = "no-color"
	FlagSecondary     = "secondary"
	FlagNow           = "now"
	FlagDate          = "date"
	FlagOut           = "out"
	FlagReminder      = "reminder"
	FlagServe         = "serve"
	FlagPort          = "port"
	FlagUser          = "user"
	FlagKeyring       = "keyring"
	FlagForce         = "force"
	FlagDescConfig    = "Path to the settings file"
	FlagDescData      = "Path to the JSON data file"
	FlagDescDebug     = "Enable debug logging to stderr"
	FlagDescNoColor   = "Disable terminal styling"
	FlagDescSecondary = "Render the continuation prompt instead of the primary prompt"
	FlagDescNow       = "Override the current time (RFC 3339), for testing"
	FlagDescDate      = "Render the reminder as if today were this date (YYYY-MM-DD)"
	FlagDescOut       = "Write the iCalendar feed to this file instead of stdout"
	FlagDescReminder  = "ISO 8601 alarm trigger added to each event (e.g. -P1D)"
	FlagDescServe     = "Serve the feed over HTTP instead of writing it out"
	FlagDescPort      = "Port for the HTTP feed server"
	FlagDescUser      = "HTTP Basic Auth username for remote imports"
	FlagDescKeyring   = "Read the Basic Auth password from the system keyring"
	FlagDescForce     = "Overwrite the data file if it already exists"
)

// -----------------------------------------------------------------------------
// Settings Keys & Defaults
// -----------------------------------------------------------------------------

const (
	SettingDefaultPrompt   = "default_prompt"
	SettingTagEndPrompt    = "tag_end_prompt"
	SettingSecondaryPrompt = "secondary_prompt"
	SettingLineWidth       = "line_width"
	SettingNotifyDays      = "birthday_notify_days"
	SettingDataFile        = "data_file"
	SettingPort            = "feed_port"

	DefaultPrompt          = ">>> "
	DefaultTagEndPrompt    = "> "
	DefaultSecondaryPrompt = "... "
	DefaultLineWidth       = 70
	DefaultNotifyDays      = 30
	DefaultPort            = "18080"

	// MinLineWidth is the smallest usable wrap width. Narrower values make
	// the divider and the indented diagnostics unreadable.
	MinLineWidth = 10
)

// -----------------------------------------------------------------------------
// Data File Format
// -----------------------------------------------------------------------------

const (
	FieldBirthdays = "birthdays"
	FieldTimeTags  = "timeTags"

	// Record arity in the JSON file: [date, name] and [start, stop, text].
	BirthdayRecLen = 2
	TimeTagRecLen  = 3

	// JSON field descriptions used in structural error messages.
	DescBirthdayDate = "birthday date"
	DescName         = "name"
	DescStartTime    = "start time"
	DescStopTime     = "stop time"
	DescText         = "text"

	// Validator parameter names used in field error messages.
	ParamDate  = "date"
	ParamName  = "name"
	ParamStart = "start"
	ParamStop  = "stop"
	ParamText  = "text"

	// Object descriptions used in parameter type error messages.
	ObjBirthday = "birthday"
	ObjTimeTag  = "time tag"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	// NullYear is the sentinel year stored for birthdays given as MM-DD.
	// It is Go's minimum time.Time year, and is rejected when a user
	// spells it out literally.
	NullYear = 1

	// Hours in a civil day. Date arithmetic is done on UTC midnights, so
	// days are always exactly this long.
	HoursPerDay = 24
	DaysPerWeek = 7

	TimeSeparator = ":"
	DateSeparator = "-"

	MinHour   = 0
	MaxHour   = 23
	MinMinute = 0
	MaxMinute = 59

	DateFormatDisplay = "Monday, 2006-01-02"
	DateFormatISO     = "2006-01-02"
	DateFormatNoYear  = "01-02"
	TimeFormatHHMM    = "15:04"

	// MessageIndent is the indentation applied to wrapped continuation
	// lines of a diagnostic message.
	MessageIndent = 4

	// Rendering literals of the birthday sentence.
	SentencePrefix   = "Birthday of "
	EmptyPlaceholder = "<empty>"
	JoinComma        = ", "
	JoinAnd          = " and "
	DescDayToday     = " today"
	DescDayTomorrow  = " tomorrow"
	DescDayInDays    = " in %d days"
	DescOnWeekday    = " on %s"
	DescNextWeek     = " next week"
	TodayPrefix      = "Today is %s"
	RuleRune         = "-"

	DefaultLeapYear = 2000            // Leap year fallback for vCard dates like --02-29
	UIDSalt         = "tagprompt-v1-" // Salt for deterministic UID generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Tag Prompt//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "tagprompt"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour

	// Date layouts accepted when importing vCard BDAY fields.
	VCardFormatFullDash  = "2006-01-02"
	VCardFormatFullBasic = "20060102"
	VCardFormatRFC3339   = time.RFC3339
	VCardFormatFullT     = "2006-01-02T15:04:05Z"
	VCardFormatNoYearD   = "--01-02"
	VCardFormatNoYearB   = "--0102"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"

	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLineWidthTooSmall = "Parameter 'line_width' value %d is less than ten."
	ErrNotifyDaysNeg     = "Parameter 'birthday_notify_days' value %d is less than zero."

	ErrDataFileRead   = "failed to read data file"
	ErrDataFileWrite  = "failed to write data file"
	ErrDataFileExists = "data file already exists (use --force to overwrite)"
	ErrSettingsLoad   = "failed to load settings"
	ErrDateArgParse   = "unable to parse date, expected YYYY-MM-DD"
	ErrNowArgParse    = "unable to parse time override, expected RFC 3339"
	ErrServerStartup  = "feed server startup failed"
	ErrServerShutdown = "feed server shutdown failed"
	ErrPortRequired   = "feed server port is required"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrKeyringRead    = "failed to read password from keyring"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrConfigDir      = "could not determine user config dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & User Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary      = "Birthday: %s"
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"
	FallbackName         = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events
	// are generated, so subscribed clients never see an invalid feed.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgNoBirthdays     = "No birthdays or messages."
	MsgNoTimeTags      = "No time tags defined."
	MsgDataFileErrors  = "Errors in JSON data file."
	MsgDataFilePath    = "Path: %s"
	MsgCorruptJSON     = "Corrupt JSON: %s: line %d column %d (char %d)."
	MsgTagListLine     = "%s to %s   %s%s"
	MsgBdayListLine    = "%s  %s"
	MsgImported        = "Imported %d birthdays to %s (%d skipped).\n"
	MsgSampleWritten   = "Sample data written to %s.\n"
	MsgExportWritten   = "Calendar written to %s.\n"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgVersionTemplate = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgDataLoaded    = "Data file loaded"
	MsgDataRejected  = "Data file rejected"
	MsgGenSuccess    = "Calendar generation successful"
	MsgBdayToday     = "Birthday found today"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgServerListen  = "HTTP feed server listening"
	MsgServerStop    = "Shutting down HTTP feed server..."
	MsgCacheUpdated  = "Feed cache updated"
	MsgDailyShown    = "Daily reminder rendered"
	MsgDailySkipped  = "Daily reminder already shown today"
	MsgStateIgnored  = "Ignoring unreadable prompt state"
	MsgImportStarted = "vCard import started"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyPath      = "path"
	LogKeyPort      = "port"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeyTags      = "time_tags"
	LogKeyBirthdays = "birthdays"
	LogKeyMessages  = "messages"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompData     = "data"
	CompEngine   = "engine"
	CompFeed     = "feed"
	CompFetcher  = "fetcher"
	CompImporter = "importer"
	CompMain     = "main"
	CompPrompt   = "prompt"
)
