package config

// Default values for configuration options — the "layer 0" of the
// defaults -> file override chain (no environment variables are read).
const (
	defaultPollInterval    = "5m"
	defaultConflictHistory = 20
	defaultTombstoneMaxAge = "720h" // 30 days
	defaultLockTimeout     = "3m"
	defaultLogLevel        = "info"
	defaultLogFormat       = "auto"
	defaultConnectTimeout  = "10s"
	defaultDataTimeout     = "60s"
)

// DefaultConfig returns a Config populated with all default values. This is
// both the starting point for TOML decoding (unset fields keep defaults)
// and the fallback when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		SyncConfig:    defaultSyncConfig(),
		LoggingConfig: defaultLoggingConfig(),
		NetworkConfig: defaultNetworkConfig(),
	}
}

func defaultSyncConfig() SyncConfig {
	return SyncConfig{
		PollInterval:    defaultPollInterval,
		ConflictHistory: defaultConflictHistory,
		TombstoneMaxAge: defaultTombstoneMaxAge,
		LockTimeout:     defaultLockTimeout,
	}
}

func defaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}

func defaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		ConnectTimeout: defaultConnectTimeout,
		DataTimeout:    defaultDataTimeout,
	}
}
