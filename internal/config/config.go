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

// UserAgent identifies the HTTP client.
var UserAgent = "Go-TidyHome/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "TidyHome"
	AppID             = "com.github.tartampluch.go-tidyhome"
	KeyringService    = "com.github.tartampluch.go-tidyhome"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	StoreFileName     = "tidyhome.json"
	ExportFileName    = "tidyhome-backup.json"
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
	// Used for the document store and log files.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating the app config and cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 720
	MainWindowHeight    = 520
	SettingsWindowWidth = 600

	// Preference Keys
	PrefLanguage   = "language"
	PrefFeedPort   = "feed_port"
	PrefSourceMode = "people_source_mode"
	PrefLocalPath  = "people_local_path"
	PrefCardDAVURL = "people_carddav_url"
	PrefUsername   = "people_username"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle     = "win_title"
	TKeyWinSettings  = "win_settings_title"
	TKeyMenuRefresh  = "menu_refresh"
	TKeyMenuSettings = "menu_settings"
	TKeyTrayStatus   = "tray_status"      // Requires Count > 0
	TKeyTrayZero     = "tray_status_zero" // Explicit key for 0

	TKeyTabToday     = "tab_today"
	TKeyTabUpcoming  = "tab_upcoming"
	TKeyTabAll       = "tab_all"
	TKeyTabHousehold = "tab_household"

	TKeyPillOverdue  = "pill_overdue" // Requires Days
	TKeyPillDueToday = "pill_due_today"
	TKeyPillUpcoming = "pill_upcoming" // Requires Days
	TKeyFmtEvery     = "fmt_every_days"
	TKeyFmtNext      = "fmt_next_due"
	TKeyFmtStreak    = "fmt_streak" // Requires Days (plural)
	TKeyFmtPoints    = "fmt_points" // Requires Count (plural)
	TKeyEmptyToday   = "empty_today"
	TKeyEmptyList    = "empty_list"

	TKeyBtnDone     = "btn_done"
	TKeyBtnEdit     = "btn_edit"
	TKeyBtnDelete   = "btn_delete"
	TKeyBtnAdd      = "btn_add"
	TKeyBtnSeed     = "btn_seed_examples"
	TKeyBtnSave     = "btn_save"
	TKeyBtnCancel   = "btn_cancel"
	TKeyBtnBrowse   = "btn_browse"
	TKeyBtnExport   = "btn_export"
	TKeyBtnImport   = "btn_import"
	TKeyBtnSyncPpl  = "btn_sync_people"
	TKeyConfirmTask = "confirm_delete_task"

	TKeyLblTitle      = "lbl_task_title"
	TKeyLblRoom       = "lbl_room"
	TKeyLblPerson     = "lbl_person"
	TKeyLblFrequency  = "lbl_frequency"
	TKeyLblEveryN     = "lbl_every_n_days"
	TKeyLblStart      = "lbl_start_date"
	TKeyLblUnassigned = "lbl_unassigned"
	TKeyLblRooms      = "lbl_rooms"
	TKeyLblPeople     = "lbl_people"
	TKeyLblNewRoom    = "lbl_new_room"
	TKeyLblNewPerson  = "lbl_new_person"

	TKeyFreqDaily    = "freq_daily"
	TKeyFreqWeekly   = "freq_weekly"
	TKeyFreqBiweekly = "freq_biweekly"
	TKeyFreqMonthly  = "freq_monthly"
	TKeyFreqCustom   = "freq_custom"

	TKeyLblGeneral   = "lbl_general"
	TKeyLblLanguage  = "lbl_language"
	TKeyHelpLanguage = "help_language"
	TKeyLblRemindAt  = "lbl_remind_at"
	TKeyHelpRemindAt = "help_remind_at"
	TKeyLblPort      = "lbl_feed_port"
	TKeyHelpPort     = "help_feed_port"
	TKeyLblBackup    = "lbl_backup"
	TKeyLblSource    = "lbl_people_source"
	TKeyModeCardDAV  = "mode_carddav"
	TKeyModeLocal    = "mode_local"
	TKeyModeOff      = "mode_off"
	TKeyLblURL       = "lbl_url"
	TKeyHelpURL      = "help_carddav_url"
	TKeyLblUser      = "lbl_user"
	TKeyLblPass      = "lbl_pass"
	TKeyLblFooter    = "lbl_footer"

	TKeyNotifCompleted = "notif_completed" // Requires Title
	TKeyNotifReminder  = "notif_reminder"  // Requires Count (plural)
	TKeyNotifImportOK  = "notif_import_ok"
	TKeyNotifImportErr = "notif_import_err"
	TKeyNotifExportOK  = "notif_export_ok"
	TKeyNotifPeople    = "notif_people_synced" // Requires Count (plural)
	TKeyNotifPeopleErr = "notif_people_err"

	TKeyErrTitleReq  = "err_title_required"
	TKeyErrTimeFmt   = "err_time_format"
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrDateFmt   = "err_date_format"

	TKeyEvtSummary = "event_summary"      // Requires Title
	TKeyEvtInRoom  = "event_summary_room" // Requires Title, Room
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb   = "web"
	SourceModeLocal = "local"
	SourceModeOff   = ""

	DefaultPort     = "18180"
	DefaultLanguage = "en"

	// Recurrence intervals in days.
	IntervalDaily    = 1
	IntervalWeekly   = 7
	IntervalBiweekly = 14
	IntervalMonthly  = 30

	// DefaultCustomDays substitutes an unset every-N-days value.
	DefaultCustomDays = 3
	// FallbackIntervalDays is used for unrecognized frequency values.
	FallbackIntervalDays = 7

	// UpcomingLimit caps the upcoming bucket shown in the UI.
	UpcomingLimit = 10

	HoursPerDay = 24
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go TidyHome//Engine//EN"
	ICalCalName = "Chores"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gotidyhome"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardFN = "FN"
	VCardN  = "N"

	DefaultICalRefresh = 1 * time.Hour

	FormatUID = "%s@%s"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// DateFormatDay is the calendar-day layout used for all due-date and
	// streak comparisons (no time-of-day component).
	DateFormatDay = "2006-01-02"

	// TimeFormatHHMM is the wall-clock layout of the reminder setting.
	TimeFormatHHMM = "15:04"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtJSON  = ".json"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	// UIRefreshInterval re-evaluates due dates while the app idles, so the
	// lists roll over shortly after midnight without user interaction.
	UIRefreshInterval = 1 * time.Hour

	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB is plenty for an address book
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderLastModified = "Last-Modified"
	HeaderRetryAfter   = "Retry-After"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderUserAgent    = "User-Agent"
	HeaderIfNoneMatch  = "If-None-Match"

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
	ErrTitleRequired  = "task title is required"
	ErrTaskNotFound   = "task not found"
	ErrTimeFormat     = "reminder time must be HH:MM"
	ErrImportParse    = "import payload is not valid JSON"
	ErrImportInvalid  = "import payload failed validation"
	ErrDocEncode      = "failed to encode document"
	ErrDocWrite       = "failed to write document"
	ErrLocalPathEmpty = "configuration error: local path is empty"
	ErrWebURLEmpty    = "configuration error: web URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported people source mode"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "feed port is required"
	ErrWriteResp      = "failed to write response body"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrConfigDir      = "could not determine user config dir"
	ErrCreateDir      = "could not create app directory"
	ErrAppFailed      = "application failed unexpectedly"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrTrayNotSupport = "system tray not supported on this platform/driver"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Chore feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackCompletedTitle = "Nice!"
	FormatCompletedBody    = "Completed: %s"
	FallbackReminderTitle  = "TidyHome – Reminder"
	FormatReminderBody     = "%d task(s) need attention today."
	FallbackEvtSummary     = "Chore: %s"
	FallbackEvtInRoom      = "Chore: %s (%s)"
	FallbackTrayLabel      = "TidyHome"
	FallbackTrayDue        = "TidyHome (%d due)"

	// StubVCalendar is the minimal valid iCalendar object used when no chores exist.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgPortBusy       = "Port %s is busy or unavailable."
	TitleStartupError = "Startup Error"

	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgServerListen    = "Feed server listening"
	MsgServerStop      = "Shutting down feed server..."
	MsgFeedUpdated     = "Chore feed updated"
	MsgDocLoaded       = "Document loaded"
	MsgDocMissing      = "No persisted document, starting fresh"
	MsgDocCorrupt      = "Persisted document unreadable, substituting defaults"
	MsgDocSaved        = "Document saved"
	MsgDocSaveFail     = "Document save failed"
	MsgImportRejected  = "Import rejected, state unchanged"
	MsgImportReplaced  = "Imported document replaced state"
	MsgTaskCompleted   = "Task completed"
	MsgTaskAdded       = "Task created"
	MsgTaskDeleted     = "Task deleted"
	MsgRoomDeleted     = "Room removed, references cleared"
	MsgPersonDeleted   = "Person removed, references cleared"
	MsgDueRefreshed    = "Due dates refreshed"
	MsgReminderArmed   = "Daily reminder scheduled"
	MsgReminderCleared = "Daily reminder cleared"
	MsgReminderFired   = "Daily reminder fired"
	MsgWorkerStart     = "Background refresh started"
	MsgWorkerStop      = "Background refresh stopped"
	MsgPeopleSyncReq   = "People sync requested"
	MsgPeopleSynced    = "People synced from vCards"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgPassFail        = "Password retrieval failed (might be empty)"
	MsgLogWarning      = "Warning: %s at %s: %v\n"

	PlaceholderURL  = "https://..."
	PlaceholderTime = "19:30"
	PlaceholderDate = "2024-01-31"
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
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyTaskID    = "task_id"
	LogKeyTitle     = "title"
	LogKeyRoom      = "room"
	LogKeyPerson    = "person"
	LogKeyDue       = "due"
	LogKeyDueCount  = "due_count"
	LogKeyStreak    = "streak_days"
	LogKeyPoints    = "points"
	LogKeyCount     = "count"
	LogKeyRemindAt  = "remind_at"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyInterval  = "interval"
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
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompStore   = "store"
	CompTracker = "tracker"
	CompRemind  = "remind"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
