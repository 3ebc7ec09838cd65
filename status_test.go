package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteforge/joplin-sync-go/internal/config"
	"github.com/noteforge/joplin-sync-go/internal/store"
)

func openTestStoreForCLI(t *testing.T) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "database.sqlite")
	s, err := store.Open(context.Background(), path, nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestRunStatus_NoTargetConfigured(t *testing.T) {
	st := openTestStoreForCLI(t)
	ctx := context.Background()

	_, err := config.LoadSyncTarget(ctx, st)
	assert.ErrorIs(t, err, config.ErrSyncConfigNotExists)

	dirty, err := st.ListDirtySyncItems(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, dirty)
}

func TestRunStatus_ReportsConfiguredTarget(t *testing.T) {
	st := openTestStoreForCLI(t)
	ctx := context.Background()

	target := config.NewJoplinServerConfig("https://example.com", "a@b.com", "secret")
	require.NoError(t, config.SaveSyncTarget(ctx, st, target))

	loaded, err := config.LoadSyncTarget(ctx, st)
	require.NoError(t, err)
	require.NotNil(t, loaded.JoplinServer)
	assert.Equal(t, "https://example.com", loaded.JoplinServer.Host)
}
