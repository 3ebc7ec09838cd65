// Package config implements TOML configuration loading, validation, and
// platform-specific path resolution for this core, scaled down from the
// teacher's multi-drive layout to the single Joplin Server target this
// core talks to.
package config

// Config is the top-level configuration structure. Sections are embedded
// so their fields are accessible directly on Config (cfg.PollInterval,
// not cfg.Sync.PollInterval), matching the teacher's promoted-field style.
type Config struct {
	SyncConfig    `toml:"sync"`
	LoggingConfig `toml:"logging"`
	NetworkConfig `toml:"network"`
}

// SyncConfig holds the [sync] section. Only PollInterval is read (by
// `sync --watch`); the other fields are validated and shown by `config show`
// but nothing else reads them.
type SyncConfig struct {
	PollInterval    string `toml:"poll_interval"`
	ConflictHistory int    `toml:"conflict_history"`
	TombstoneMaxAge string `toml:"tombstone_max_age"`
	LockTimeout     string `toml:"lock_timeout"`
}

// LoggingConfig holds the [logging] section. Only LogLevel is read (by the
// CLI's logger setup); LogFile and LogFormat are validated and shown by
// `config show`, and logs always go to stderr as text.
type LoggingConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"`
	LogFormat string `toml:"log_format"`
}

// NetworkConfig controls the Joplin Server HTTP client's timeouts.
// UserAgent is shown by `config show` but not sent; the CLI always sends
// "joplin-sync-go/<version>".
type NetworkConfig struct {
	ConnectTimeout string `toml:"connect_timeout"`
	DataTimeout    string `toml:"data_timeout"`
	UserAgent      string `toml:"user_agent"`
}
