package sync_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteforge/joplin-sync-go/internal/filedriver/localdriver"
	"github.com/noteforge/joplin-sync-go/internal/model"
	"github.com/noteforge/joplin-sync-go/internal/store"
	"github.com/noteforge/joplin-sync-go/internal/sync"
	"github.com/noteforge/joplin-sync-go/internal/wire"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "database.sqlite")
	s, err := store.Open(context.Background(), path, nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })

	return s
}

func newTestEngine(t *testing.T, st *store.Store, drv *localdriver.Driver) *sync.Engine {
	t.Helper()

	engine, err := sync.NewEngine(sync.EngineConfig{
		Store:    st,
		Driver:   drv,
		ClientID: "test-client",
		Target:   1,
	})
	require.NoError(t, err)

	return engine
}

func newLocalDriver(t *testing.T) *localdriver.Driver {
	t.Helper()

	drv, err := localdriver.New(t.TempDir(), nil)
	require.NoError(t, err)

	return drv
}

func TestRunOnce_UploadsDirtyNote(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	engine := newTestEngine(t, st, newLocalDriver(t))

	n := model.NewNote("", "Shopping list", "milk, eggs")
	require.NoError(t, st.PutNote(ctx, n))
	require.NoError(t, st.PutSyncItem(ctx, model.NewSyncItem(n.ID, model.KindNote, 1, model.LocalEdit)))

	report, err := engine.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.UploadCount)
	assert.Empty(t, report.Errors)
}

func TestRunOnce_DeletesPendingTombstone(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)
	drv := newLocalDriver(t)
	engine := newTestEngine(t, st, drv)

	id := model.NewID()
	require.NoError(t, drv.PutText(ctx, id.Filename(), "dummy"))
	require.NoError(t, st.PutDeletedItem(ctx, model.NewDeletedItem(id, model.KindNote)))

	report, err := engine.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DeleteRemoteCount)

	_, err = drv.GetText(ctx, id.Filename())
	assert.Error(t, err)

	pending, err := st.ListDeletedItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRunOnce_PullsRemoteNoteIntoStore(t *testing.T) {
	ctx := context.Background()
	drv := newLocalDriver(t)

	st := openTestStore(t)
	engine := newTestEngine(t, st, drv)

	// Another client uploads a note directly to the shared remote.
	remote := model.NewNote("", "Remote note", "from another client")
	require.NoError(t, drv.PutText(ctx, remote.ID.Filename(), wire.EncodeNote(remote)))

	report, err := engine.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.PullCount)

	pulled, err := st.GetNote(ctx, remote.ID)
	require.NoError(t, err)
	assert.Equal(t, "Remote note", pulled.Title)
	assert.Equal(t, "from another client", pulled.Body)
}

func TestRunOnce_ConflictCopyOnDivergentEdit(t *testing.T) {
	ctx := context.Background()
	drv := newLocalDriver(t)
	st := openTestStore(t)
	engine := newTestEngine(t, st, drv)

	n := model.NewNote("", "Original", "v1")
	require.NoError(t, st.PutNote(ctx, n))
	require.NoError(t, st.PutSyncItem(ctx, model.NewSyncItem(n.ID, model.KindNote, 1, model.LocalEdit)))

	_, err := engine.RunOnce(ctx)
	require.NoError(t, err)

	// Diverge the local copy, mark it dirty again.
	local, err := st.GetNote(ctx, n.ID)
	require.NoError(t, err)
	local.Body = "v2 from this client"
	require.NoError(t, st.PutNote(ctx, local))
	require.NoError(t, st.PutSyncItem(ctx, model.NewSyncItem(n.ID, model.KindNote, 1, model.LocalEdit)))

	// Simulate another client's independent edit landing on the remote.
	remoteEdit, err := st.GetNote(ctx, n.ID)
	require.NoError(t, err)
	remoteEdit.Body = "v2 from another client"
	remoteEdit.UpdatedTime = model.Now()
	require.NoError(t, drv.PutText(ctx, n.ID.Filename(), wire.EncodeNote(remoteEdit)))

	report, err := engine.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.ConflictNoteCount)

	conflicts, err := st.ListConflictNotes(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, n.ID, conflicts[0].ConflictOriginalID)
	assert.Equal(t, "v2 from this client", conflicts[0].Body)
}

func TestRunOnce_ResyncOnRejectedCursor(t *testing.T) {
	ctx := context.Background()
	drv := newLocalDriver(t)
	st := openTestStore(t)
	engine := newTestEngine(t, st, drv)

	require.NoError(t, st.PutSetting(ctx, model.SettingDeltaCursor, "not-a-real-cursor"))

	remote := model.NewNote("", "Survives resync", "body")
	require.NoError(t, drv.PutText(ctx, remote.ID.Filename(), wire.EncodeNote(remote)))

	report, err := engine.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.PullCount)
}

func TestRunOnce_SkipsUnsupportedKindOnPull(t *testing.T) {
	ctx := context.Background()
	drv := newLocalDriver(t)
	st := openTestStore(t)
	engine := newTestEngine(t, st, drv)

	// A future client version writes an item of a kind this core doesn't
	// know about yet. It must round-trip as a no-op: no error, no local
	// row, and it must not count toward pull_count.
	id := model.NewID()
	doc := "Future item\nid: " + id.String() + "\ntype_: 99"
	require.NoError(t, drv.PutText(ctx, id.Filename(), doc))

	report, err := engine.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.PullCount)
	assert.Empty(t, report.Errors)

	_, err = st.GetSyncItem(ctx, id, 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
