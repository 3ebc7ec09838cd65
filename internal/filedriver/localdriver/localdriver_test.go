package localdriver_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteforge/joplin-sync-go/internal/filedriver"
	"github.com/noteforge/joplin-sync-go/internal/filedriver/localdriver"
)

func TestPutGetStatRoundTrip(t *testing.T) {
	ctx := context.Background()
	d, err := localdriver.New(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, d.PutText(ctx, "abc.md", "hello"))

	got, err := d.GetText(ctx, "abc.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	st, err := d.Stat(ctx, "abc.md")
	require.NoError(t, err)
	assert.Equal(t, int64(5), st.Size)
}

func TestStatMissingReturnsErrNotExist(t *testing.T) {
	d, err := localdriver.New(t.TempDir(), nil)
	require.NoError(t, err)

	_, err = d.Stat(context.Background(), "nope.md")
	assert.ErrorIs(t, err, filedriver.ErrNotExist)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	d, err := localdriver.New(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, d.Delete(ctx, "never-existed.md"))
	require.NoError(t, d.Delete(ctx, "never-existed.md"))
}

func TestDeltaReportsCreatesAndDeletes(t *testing.T) {
	ctx := context.Background()
	d, err := localdriver.New(t.TempDir(), nil)
	require.NoError(t, err)

	require.NoError(t, d.PutText(ctx, "a.md", "1"))
	require.NoError(t, d.PutText(ctx, "b.md", "2"))

	page, err := d.Delta(ctx, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.False(t, page.HasMore)

	require.NoError(t, d.Delete(ctx, "a.md"))

	page2, err := d.Delta(ctx, page.Cursor)
	require.NoError(t, err)
	require.Len(t, page2.Items, 1)
	assert.True(t, page2.Items[0].Deleted)
	assert.Equal(t, "a.md", page2.Items[0].Path)
}

func TestLockAcquireConflict(t *testing.T) {
	ctx := context.Background()
	d, err := localdriver.New(t.TempDir(), nil)
	require.NoError(t, err)

	l1 := filedriver.Lock{Type: filedriver.LockTypeSync, ClientType: filedriver.ClientTypeCLI, ClientID: "client-1"}
	l2 := filedriver.Lock{Type: filedriver.LockTypeSync, ClientType: filedriver.ClientTypeCLI, ClientID: "client-2"}

	require.NoError(t, d.AcquireLock(ctx, l1))
	assert.ErrorIs(t, d.AcquireLock(ctx, l2), filedriver.ErrLockHeld)

	require.NoError(t, d.ReleaseLock(ctx, l1))
	require.NoError(t, d.AcquireLock(ctx, l2))
}
