package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	minPollInterval = 1 * time.Minute
	minLockTimeout  = 30 * time.Second
	minConnectTO    = 1 * time.Second
	minDataTO       = 5 * time.Second
	minConflictHist = 1
)

// Validate checks all configuration values and returns every error found
// rather than stopping at the first, so a user fixing a config file sees
// every problem in one pass.
func Validate(cfg *Config) error {
	var errs []error

	errs = append(errs, validateSync(&cfg.SyncConfig)...)
	errs = append(errs, validateLogging(&cfg.LoggingConfig)...)
	errs = append(errs, validateNetwork(&cfg.NetworkConfig)...)

	return errors.Join(errs...)
}

func validateSync(s *SyncConfig) []error {
	var errs []error

	errs = append(errs, validateDurationMin("poll_interval", s.PollInterval, minPollInterval)...)
	errs = append(errs, validateDurationNonNeg("tombstone_max_age", s.TombstoneMaxAge)...)
	errs = append(errs, validateDurationMin("lock_timeout", s.LockTimeout, minLockTimeout)...)

	if s.ConflictHistory < minConflictHist {
		errs = append(errs, fmt.Errorf("conflict_history: must be >= %d, got %d", minConflictHist, s.ConflictHistory))
	}

	return errs
}

func validateDuration(field, value string, minimum time.Duration) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q: %w", field, value, err)
	}

	if d < minimum {
		return fmt.Errorf("%s: must be >= %s, got %s", field, minimum, d)
	}

	return nil
}

func validateDurationMin(field, value string, minimum time.Duration) []error {
	if err := validateDuration(field, value, minimum); err != nil {
		return []error{err}
	}

	return nil
}

func validateDurationNonNeg(field, value string) []error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return []error{fmt.Errorf("%s: invalid duration %q: %w", field, value, err)}
	}

	if d < 0 {
		return []error{fmt.Errorf("%s: must be >= 0, got %s", field, d)}
	}

	return nil
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func validateLogging(l *LoggingConfig) []error {
	var errs []error

	if !validLogLevels[l.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level: must be one of debug, info, warn, error; got %q", l.LogLevel))
	}

	if !validLogFormats[l.LogFormat] {
		errs = append(errs, fmt.Errorf("log_format: must be one of auto, text, json; got %q", l.LogFormat))
	}

	return errs
}

var validLogFormats = map[string]bool{
	"auto": true,
	"text": true,
	"json": true,
}

func validateNetwork(n *NetworkConfig) []error {
	var errs []error

	errs = append(errs, validateDurationMin("connect_timeout", n.ConnectTimeout, minConnectTO)...)
	errs = append(errs, validateDurationMin("data_timeout", n.DataTimeout, minDataTO)...)

	return errs
}
