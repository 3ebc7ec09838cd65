package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noteforge/joplin-sync-go/internal/config"
)

func TestBuildLogger_NilConfigDefaultsToWarn(t *testing.T) {
	resetLogFlags(t)

	logger := buildLogger(nil)
	assert.True(t, logger.Enabled(nil, slog.LevelWarn))
	assert.False(t, logger.Enabled(nil, slog.LevelInfo))
}

func TestBuildLogger_ConfigLogLevelHonored(t *testing.T) {
	resetLogFlags(t)

	cfg := config.DefaultConfig()
	cfg.LogLevel = "debug"

	logger := buildLogger(cfg)
	assert.True(t, logger.Enabled(nil, slog.LevelDebug))
}

func TestBuildLogger_VerboseFlagOverridesConfig(t *testing.T) {
	resetLogFlags(t)

	cfg := config.DefaultConfig()
	cfg.LogLevel = "error"

	flagVerbose = true
	defer func() { flagVerbose = false }()

	logger := buildLogger(cfg)
	assert.True(t, logger.Enabled(nil, slog.LevelInfo))
}

func TestBuildLogger_QuietFlagWinsOverConfig(t *testing.T) {
	resetLogFlags(t)

	cfg := config.DefaultConfig()
	cfg.LogLevel = "debug"

	flagQuiet = true
	defer func() { flagQuiet = false }()

	logger := buildLogger(cfg)
	assert.False(t, logger.Enabled(nil, slog.LevelInfo))
	assert.True(t, logger.Enabled(nil, slog.LevelError))
}

func resetLogFlags(t *testing.T) {
	t.Helper()

	flagVerbose, flagDebug, flagQuiet = false, false, false
	t.Cleanup(func() { flagVerbose, flagDebug, flagQuiet = false, false, false })
}
