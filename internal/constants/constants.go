package constants

const (
	AppName           = "pouchfree"
	DefaultConfigPath = "~/.config/pouchfree/pouchfree.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Schedule defaults
	DefaultWakeTime  = "07:00"
	DefaultSleepTime = "23:00"

	// Baseline defaults used when onboarding data is missing
	DefaultBaselineDailyPouches = 10
	DefaultBaselineStrengthMg   = 6

	// AutoIntervalSentinel marks "auto" interval mode; consumers must resolve
	// it to a concrete interval before use.
	AutoIntervalSentinel = 0

	// FallbackIntervalMin is returned when the daily limit makes the
	// auto-interval division undefined.
	FallbackIntervalMin = 120

	// Statistics windows
	MonthlyWindowDays   = 30
	WeeklyWindowDays    = 7
	StreakLookbackDays  = 60
	MinDaysForReduction = 3

	// Struggle detection thresholds: over-limit days out of the trailing week
	StruggleWindowDays   = 7
	StruggleMinDataDays  = 3
	StruggleOverLimitMin = 3

	// Freedom week: consecutive nicotine-free days required
	FreedomWeekDays = 7

	// Phase extension adds this many weeks to the current phase
	PhaseExtensionWeeks = 2

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "pouchfree-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "pouchfree-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.pouchfree.tray"
)
