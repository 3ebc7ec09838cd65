package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteforge/joplin-sync-go/internal/model"
	"github.com/noteforge/joplin-sync-go/internal/wire"
)

func TestNoteRoundTrip(t *testing.T) {
	n := model.NewNote("f1f1f1f1f1f1f1f1f1f1f1f1f1f1f1f1", "My Title", "Line one\nLine two")
	n.Latitude = 12.5
	n.Longitude = -7.25
	n.Altitude = 0
	n.Author = "someone"
	n.IsTodo = 1
	n.TodoDue = model.Now()

	doc := wire.EncodeNote(n)
	require.NotEmpty(t, doc)

	got, err := wire.DecodeNote(doc)
	require.NoError(t, err)

	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, n.Title, got.Title)
	assert.Equal(t, n.Body, got.Body)
	assert.Equal(t, n.ParentID, got.ParentID)
	assert.Equal(t, n.Latitude, got.Latitude)
	assert.Equal(t, n.Longitude, got.Longitude)
	assert.Equal(t, n.Author, got.Author)
	assert.Equal(t, n.IsTodo, got.IsTodo)
	assert.Equal(t, n.TodoDue, got.TodoDue)
	assert.Equal(t, model.KindNote, got.Kind())
}

func TestNoteRoundTripEmptyOptionalFields(t *testing.T) {
	n := model.NewNote("", "Untitled", "")
	doc := wire.EncodeNote(n)

	got, err := wire.DecodeNote(doc)
	require.NoError(t, err)

	assert.Empty(t, got.Author)
	assert.Empty(t, got.SourceURL)
	assert.True(t, got.TodoDue.Zero())
	assert.Empty(t, got.Body)
}

func TestFolderSetTitleCollapsesNewlines(t *testing.T) {
	f := model.NewFolder("", "Title\nwith\nbreaks")
	assert.Equal(t, "Title with breaks", f.Title)

	doc := wire.EncodeFolder(f)
	got, err := wire.DecodeFolder(doc)
	require.NoError(t, err)
	assert.Equal(t, f.Title, got.Title)
	assert.Equal(t, model.KindFolder, got.Kind())
}

func TestTagRoundTrip(t *testing.T) {
	tag := model.NewTag("work")
	doc := wire.EncodeTag(tag)

	got, err := wire.DecodeTag(doc)
	require.NoError(t, err)
	assert.Equal(t, tag.Title, got.Title)
	assert.Equal(t, tag.ID, got.ID)
}

func TestNoteTagRoundTripHasNoTitleLine(t *testing.T) {
	nt := model.NewNoteTag("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	doc := wire.EncodeNoteTag(nt)

	d := wire.Parse(doc)
	assert.Empty(t, d.Title)
	assert.Empty(t, d.Body)

	got, err := wire.DecodeNoteTag(doc)
	require.NoError(t, err)
	assert.Equal(t, nt.NoteID, got.NoteID)
	assert.Equal(t, nt.TagID, got.TagID)
}

func TestResourceRoundTrip(t *testing.T) {
	r := model.NewResource("photo.png", "image/png", "png", 2048)
	doc := wire.EncodeResource(r)

	got, err := wire.DecodeResource(doc)
	require.NoError(t, err)
	assert.Equal(t, r.Filename, got.Filename)
	assert.Equal(t, r.Mime, got.Mime)
	assert.Equal(t, r.FileExtension, got.FileExtension)
	assert.Equal(t, r.Size, got.Size)
	assert.Equal(t, ".resource/"+r.ID.String()+".png", r.BlobPath())
}

func TestDecodeWrongKindFails(t *testing.T) {
	f := model.NewFolder("", "Notebook")
	doc := wire.EncodeFolder(f)

	_, err := wire.DecodeNote(doc)
	assert.Error(t, err)
}

func TestDecodeDispatchesByKind(t *testing.T) {
	n := model.NewNote("", "Title", "Body")
	doc := wire.EncodeNote(n)

	got, err := wire.Decode(doc)
	require.NoError(t, err)

	note, ok := got.(*model.Note)
	require.True(t, ok)
	assert.Equal(t, n.ID, note.ID)
}

func TestBodyContainingColonLinesSurvives(t *testing.T) {
	body := "key: looks-like-metadata\nbut isn't"
	n := model.NewNote("", "Title", body)
	doc := wire.EncodeNote(n)

	got, err := wire.DecodeNote(doc)
	require.NoError(t, err)
	assert.Equal(t, body, got.Body)
}
