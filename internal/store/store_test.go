package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteforge/joplin-sync-go/internal/model"
	"github.com/noteforge/joplin-sync-go/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "database.sqlite")
	s, err := store.Open(context.Background(), path, nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestPutGetNoteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	n := model.NewNote("", "Title", "Body")
	require.NoError(t, s.PutNote(ctx, n))

	got, err := s.GetNote(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.Title, got.Title)
	assert.Equal(t, n.Body, got.Body)
}

func TestGetNoteMissingReturnsErrNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetNote(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSyncItemDirtyTracking(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id := model.NewID()
	si := model.NewSyncItem(id, model.KindNote, 1, model.LocalEdit)
	require.NoError(t, s.PutSyncItem(ctx, si))
	assert.True(t, si.Dirty())

	dirty, err := s.ListDirtySyncItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, dirty, 1)
	assert.Equal(t, id, dirty[0].ItemID)

	si.MarkSynced()
	require.NoError(t, s.PutSyncItem(ctx, si))

	dirty, err = s.ListDirtySyncItems(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, dirty)
}

func TestDeletedItemLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	di := model.NewDeletedItem(model.NewID(), model.KindNote)
	require.NoError(t, s.PutDeletedItem(ctx, di))

	pending, err := s.ListDeletedItems(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, s.RemoveDeletedItem(ctx, pending[0].ID))

	pending, err = s.ListDeletedItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	v, err := s.GetSetting(ctx, model.SettingClientID)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.PutSetting(ctx, model.SettingClientID, "abc-123"))

	v, err = s.GetSetting(ctx, model.SettingClientID)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", v)
}

func TestListConflictNotes(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	original := model.NewNote("", "Meeting notes", "original body")
	require.NoError(t, s.PutNote(ctx, original))

	copyNote := model.NewNote("", original.Title, "local body")
	copyNote.IsConflict = 1
	copyNote.ConflictOriginalID = original.ID
	require.NoError(t, s.PutNote(ctx, copyNote))

	conflicts, err := s.ListConflictNotes(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, copyNote.ID, conflicts[0].ID)
	assert.Equal(t, original.ID, conflicts[0].ConflictOriginalID)
}

func TestTagsForNote(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	n := model.NewNote("", "Title", "")
	require.NoError(t, s.PutNote(ctx, n))

	tag := model.NewTag("work")
	require.NoError(t, s.PutTag(ctx, tag))

	nt := model.NewNoteTag(n.ID, tag.ID)
	require.NoError(t, s.PutNoteTag(ctx, nt))

	tags, err := s.TagsForNote(ctx, n.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "work", tags[0].Title)
}
