package constants

import "time"

const (
	DefaultTimeout = 30 * time.Second

	// Database pool settings
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes

	// Connection retry policy for managed databases that may still be
	// warming up. This is the only retry policy in the system.
	DatabaseConnectAttempts   = 20
	DatabaseConnectRetryDelay = 10 * time.Second

	// Fetch pipeline. MaxFetchResults is the per-request page size; the
	// event source pages until the provider stops returning a next token.
	DefaultCalendarID  = "primary"
	DefaultWindowDays  = 31
	WindowFetchDelay   = 300 * time.Millisecond
	MaxFetchResults    = 2500
	MaxLoggedSkips     = 5
	YearHistogramLimit = 5

	// Cache TTLs for the analytics API
	SummaryStatsCacheTTL  = 30 * time.Minute
	FilterOptionsCacheTTL = time.Hour

	// Cron expression for the scheduled daily fetch (UTC)
	DailyFetchCron = "0 6 * * *"
)
