// Package config defines service configuration structures and loading.
//
// Conventions follow the rest of the repo: defaults come from New,
// Load layers an optional YAML file and environment variables on top,
// and external errors are wrapped via this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Store selects the score store backend: "postgres" or "memory".
	Store string `koanf:"store"`

	// DatabaseURL is the Postgres connection string, required when
	// Store is "postgres".
	DatabaseURL string `koanf:"database_url"`

	// MetricsAddr is the Prometheus scrape listen address. Empty
	// disables the metrics listener.
	MetricsAddr string `koanf:"metrics_addr"`

	// QueueSize bounds the in-memory batch queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of batch sync workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the already-synced play cache.
	DedupeSize int `koanf:"dedupe_size"`

	// Game and GameVersion identify the catalog slice submissions are
	// resolved against.
	Game        string `koanf:"game"`
	GameVersion int    `koanf:"game_version"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		Store:       "postgres",
		MetricsAddr: "",
		QueueSize:   1024,
		WorkerCount: 4,
		DedupeSize:  50_000,
		Game:        "sdvx",
		GameVersion: 6,
	}
}
