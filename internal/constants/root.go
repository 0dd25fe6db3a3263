package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "dayplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/dayplan"
	DefaultConfigPath  = "~/.config/dayplan/config.yaml"
	DefaultDBPath      = "~/.config/dayplan/dayplan.db"
	DefaultDataDir     = "~/.config/dayplan/data"
	Version            = "v0.3.0"

	// StorageKey is the single key the whole root document is persisted under.
	StorageKey = "dailyPlanner_v1"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dayplan-"
	BackupFileSuffix = ".json"

	// RefreshInterval is how often the now/next summary is recomputed.
	RefreshInterval = 30 * time.Second
	// DefaultRefreshSpec is RefreshInterval expressed as a cron schedule.
	DefaultRefreshSpec = "@every 30s"

	// Storage drivers
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverFile     = "file"
	DriverMemory   = "memory"
)

// Session States
const (
	StateDay SessionState = iota
	StateEditEntry
	StateAddEvent
	StateEditAnchors
	StateConfirmDelete
)
