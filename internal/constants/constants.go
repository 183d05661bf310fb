package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	NotifyTimeout      = 10 * time.Second
	PassTimeout        = 4 * time.Minute
)

const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	// Concurrent per-player fetches within a single pass. The HDev free
	// tier allows 30 requests/min, so the fan-out stays narrow.
	PassWorkers = 4

	DefaultPollInterval = 5 * time.Minute
	MinPollInterval     = 1 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)
