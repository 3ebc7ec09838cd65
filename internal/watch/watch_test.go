package watch_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteforge/joplin-sync-go/internal/watch"
)

func TestRun_TriggersOnStartupAndPollInterval(t *testing.T) {
	dir := t.TempDir()
	w := watch.New(dir, 30*time.Millisecond, slog.Default())

	var calls atomic.Int32

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := w.Run(ctx, func(_ context.Context, _ string) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, int(calls.Load()), 2, "expected at least a startup trigger plus one poll tick")
}

func TestRun_ReturnsNilOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	w := watch.New(dir, time.Hour, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Run(ctx, func(_ context.Context, _ string) error { return nil })
	assert.NoError(t, err)
}
