package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_AllFieldsPopulated(t *testing.T) {
	cfg := DefaultConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "5m", cfg.PollInterval)
	assert.Equal(t, 20, cfg.ConflictHistory)
	assert.Equal(t, "720h", cfg.TombstoneMaxAge)
	assert.Equal(t, "3m", cfg.LockTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.LogFormat)
	assert.Equal(t, "10s", cfg.ConnectTimeout)
	assert.Equal(t, "60s", cfg.DataTimeout)
}

func TestDefaultConfig_PassesValidation(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_RejectsBadPollInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PollInterval = "10s"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poll_interval")
}

func TestValidate_RejectsBadLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestLoadOrDefault_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestCreateDefaultThenLoad_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, CreateDefault(path))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

type memStore struct{ values map[string]string }

func newMemStore() *memStore { return &memStore{values: map[string]string{}} }

func (m *memStore) GetSetting(_ context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memStore) PutSetting(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func TestSyncTargetRoundTrip(t *testing.T) {
	st := newMemStore()
	ctx := context.Background()

	_, err := LoadSyncTarget(ctx, st)
	assert.ErrorIs(t, err, ErrSyncConfigNotExists)

	cfg := NewJoplinServerConfig("https://example.com", "a@b.com", "secret")
	require.NoError(t, SaveSyncTarget(ctx, st, cfg))

	loaded, err := LoadSyncTarget(ctx, st)
	require.NoError(t, err)
	require.NotNil(t, loaded.JoplinServer)
	assert.Equal(t, "https://example.com", loaded.JoplinServer.Host)
	assert.Equal(t, "a@b.com", loaded.JoplinServer.Email)
	assert.Equal(t, "secret", loaded.JoplinServer.Password)
}
