package lock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteforge/joplin-sync-go/internal/filedriver/localdriver"
	"github.com/noteforge/joplin-sync-go/internal/lock"
)

func TestAcquireSyncReleasesCleanly(t *testing.T) {
	ctx := context.Background()
	drv, err := localdriver.New(t.TempDir(), nil)
	require.NoError(t, err)

	h := lock.NewHandler(drv, "client-1", nil)

	release, err := h.AcquireSync(ctx)
	require.NoError(t, err)

	locks, err := h.List(ctx)
	require.NoError(t, err)
	assert.Len(t, locks, 1)

	require.NoError(t, release(ctx))

	locks, err = h.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, locks)
}

func TestAcquireSyncConflict(t *testing.T) {
	ctx := context.Background()
	drv, err := localdriver.New(t.TempDir(), nil)
	require.NoError(t, err)

	h1 := lock.NewHandler(drv, "client-1", nil)
	h2 := lock.NewHandler(drv, "client-2", nil)

	_, err = h1.AcquireSync(ctx)
	require.NoError(t, err)

	_, err = h2.AcquireSync(ctx)
	assert.Error(t, err)
}
