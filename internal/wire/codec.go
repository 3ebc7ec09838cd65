package wire

import (
	"fmt"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// EncodeNote renders a Note to its wire document.
func EncodeNote(n *model.Note) string {
	s := NewSerializer(n.Title, n.Body, true)

	s.WriteString("id", n.ID.String())
	s.WriteString("parent_id", n.ParentID.String())
	s.WriteTimestamp("created_time", n.CreatedTime)
	s.WriteTimestamp("updated_time", n.UpdatedTime)
	s.WriteInt("is_conflict", n.IsConflict)
	s.WriteFloat("latitude", n.Latitude)
	s.WriteFloat("longitude", n.Longitude)
	s.WriteFloat("altitude", n.Altitude)
	s.WriteString("author", n.Author)
	s.WriteString("source_url", n.SourceURL)
	s.WriteInt("is_todo", n.IsTodo)
	s.WriteOptTimestamp("todo_due", n.TodoDue)
	s.WriteOptTimestamp("todo_completed", n.TodoCompleted)
	s.WriteString("source", n.Source)
	s.WriteString("source_application", n.SourceApplication)
	s.WriteString("application_data", n.ApplicationData)
	s.WriteFloat("order", n.Order)
	s.WriteTimestamp("user_created_time", n.UserCreatedTime)
	s.WriteTimestamp("user_updated_time", n.UserUpdatedTime)
	s.WriteString("encryption_cipher_text", n.EncryptionCipherText)
	s.WriteBool("encryption_applied", n.EncryptionApplied != 0)
	s.WriteInt("markup_language", n.MarkupLanguage)
	s.WriteBool("is_shared", n.IsShared != 0)
	s.WriteString("share_id", n.ShareID)
	s.WriteString("conflict_original_id", n.ConflictOriginalID.String())
	s.WriteString("master_key_id", n.MasterKeyID)
	s.WriteKind(model.KindNote)

	return s.Finish()
}

// DecodeNote parses a wire document into a Note.
func DecodeNote(doc string) (*model.Note, error) {
	d := Parse(doc)

	k, err := d.Kind()
	if err != nil {
		return nil, err
	}

	if k != model.KindNote {
		return nil, fmt.Errorf("wire: expected note, got %s", k)
	}

	n := &model.Note{
		Title:                d.Title,
		Body:                 d.Body,
		ID:                   model.ID(d.OptString("id")),
		ParentID:             model.ID(d.OptString("parent_id")),
		CreatedTime:          d.Timestamp("created_time"),
		UpdatedTime:          d.Timestamp("updated_time"),
		IsConflict:           d.Int("is_conflict"),
		Latitude:             d.Float("latitude"),
		Longitude:            d.Float("longitude"),
		Altitude:             d.Float("altitude"),
		Author:               d.OptString("author"),
		SourceURL:            d.OptString("source_url"),
		IsTodo:               d.Int("is_todo"),
		TodoDue:              d.Timestamp("todo_due"),
		TodoCompleted:        d.Timestamp("todo_completed"),
		Source:               d.OptString("source"),
		SourceApplication:    d.OptString("source_application"),
		ApplicationData:      d.OptString("application_data"),
		Order:                d.Float("order"),
		UserCreatedTime:      d.Timestamp("user_created_time"),
		UserUpdatedTime:      d.Timestamp("user_updated_time"),
		EncryptionCipherText: d.OptString("encryption_cipher_text"),
		EncryptionApplied:    boolToInt(d.Bool("encryption_applied")),
		MarkupLanguage:       d.Int("markup_language"),
		IsShared:             boolToInt(d.Bool("is_shared")),
		ShareID:              d.OptString("share_id"),
		ConflictOriginalID:   model.ID(d.OptString("conflict_original_id")),
		MasterKeyID:          d.OptString("master_key_id"),
	}

	return n, nil
}

// EncodeFolder renders a Folder to its wire document.
func EncodeFolder(f *model.Folder) string {
	s := NewSerializer(f.Title, "", false)

	s.WriteString("id", f.ID.String())
	s.WriteTimestamp("created_time", f.CreatedTime)
	s.WriteTimestamp("updated_time", f.UpdatedTime)
	s.WriteTimestamp("user_created_time", f.UserCreatedTime)
	s.WriteTimestamp("user_updated_time", f.UserUpdatedTime)
	s.WriteString("encryption_cipher_text", f.EncryptionCipherText)
	s.WriteBool("encryption_applied", f.EncryptionApplied != 0)
	s.WriteString("parent_id", f.ParentID.String())
	s.WriteBool("is_shared", f.IsShared != 0)
	s.WriteString("share_id", f.ShareID)
	s.WriteString("master_key_id", f.MasterKeyID)
	s.WriteString("icon", f.Icon)
	s.WriteKind(model.KindFolder)

	return s.Finish()
}

// DecodeFolder parses a wire document into a Folder.
func DecodeFolder(doc string) (*model.Folder, error) {
	d := Parse(doc)

	k, err := d.Kind()
	if err != nil {
		return nil, err
	}

	if k != model.KindFolder {
		return nil, fmt.Errorf("wire: expected folder, got %s", k)
	}

	return &model.Folder{
		Title:                d.Title,
		ID:                   model.ID(d.OptString("id")),
		CreatedTime:          d.Timestamp("created_time"),
		UpdatedTime:          d.Timestamp("updated_time"),
		UserCreatedTime:      d.Timestamp("user_created_time"),
		UserUpdatedTime:      d.Timestamp("user_updated_time"),
		EncryptionCipherText: d.OptString("encryption_cipher_text"),
		EncryptionApplied:    boolToInt(d.Bool("encryption_applied")),
		ParentID:             model.ID(d.OptString("parent_id")),
		IsShared:             boolToInt(d.Bool("is_shared")),
		ShareID:              d.OptString("share_id"),
		MasterKeyID:          d.OptString("master_key_id"),
		Icon:                 d.OptString("icon"),
	}, nil
}

// EncodeTag renders a Tag to its wire document.
func EncodeTag(t *model.Tag) string {
	s := NewSerializer(t.Title, "", false)

	s.WriteString("id", t.ID.String())
	s.WriteTimestamp("created_time", t.CreatedTime)
	s.WriteTimestamp("updated_time", t.UpdatedTime)
	s.WriteTimestamp("user_created_time", t.UserCreatedTime)
	s.WriteTimestamp("user_updated_time", t.UserUpdatedTime)
	s.WriteString("encryption_cipher_text", t.EncryptionCipherText)
	s.WriteBool("encryption_applied", t.EncryptionApplied != 0)
	s.WriteBool("is_shared", t.IsShared != 0)
	s.WriteString("parent_id", t.ParentID.String())
	s.WriteKind(model.KindTag)

	return s.Finish()
}

// DecodeTag parses a wire document into a Tag.
func DecodeTag(doc string) (*model.Tag, error) {
	d := Parse(doc)

	k, err := d.Kind()
	if err != nil {
		return nil, err
	}

	if k != model.KindTag {
		return nil, fmt.Errorf("wire: expected tag, got %s", k)
	}

	return &model.Tag{
		Title:                d.Title,
		ID:                   model.ID(d.OptString("id")),
		CreatedTime:          d.Timestamp("created_time"),
		UpdatedTime:          d.Timestamp("updated_time"),
		UserCreatedTime:      d.Timestamp("user_created_time"),
		UserUpdatedTime:      d.Timestamp("user_updated_time"),
		EncryptionCipherText: d.OptString("encryption_cipher_text"),
		EncryptionApplied:    boolToInt(d.Bool("encryption_applied")),
		IsShared:             boolToInt(d.Bool("is_shared")),
		ParentID:             model.ID(d.OptString("parent_id")),
	}, nil
}

// EncodeNoteTag renders a NoteTag to its wire document. NoteTag has no
// title or body — the header section is empty.
func EncodeNoteTag(nt *model.NoteTag) string {
	s := NewSerializer("", "", false)

	s.WriteString("id", nt.ID.String())
	s.WriteString("note_id", nt.NoteID.String())
	s.WriteString("tag_id", nt.TagID.String())
	s.WriteTimestamp("created_time", nt.CreatedTime)
	s.WriteTimestamp("updated_time", nt.UpdatedTime)
	s.WriteTimestamp("user_created_time", nt.UserCreatedTime)
	s.WriteTimestamp("user_updated_time", nt.UserUpdatedTime)
	s.WriteString("encryption_cipher_text", nt.EncryptionCipherText)
	s.WriteBool("encryption_applied", nt.EncryptionApplied != 0)
	s.WriteBool("is_shared", nt.IsShared != 0)
	s.WriteKind(model.KindNoteTag)

	return s.Finish()
}

// DecodeNoteTag parses a wire document into a NoteTag.
func DecodeNoteTag(doc string) (*model.NoteTag, error) {
	d := Parse(doc)

	k, err := d.Kind()
	if err != nil {
		return nil, err
	}

	if k != model.KindNoteTag {
		return nil, fmt.Errorf("wire: expected note_tag, got %s", k)
	}

	return &model.NoteTag{
		ID:                   model.ID(d.OptString("id")),
		NoteID:               model.ID(d.OptString("note_id")),
		TagID:                model.ID(d.OptString("tag_id")),
		CreatedTime:          d.Timestamp("created_time"),
		UpdatedTime:          d.Timestamp("updated_time"),
		UserCreatedTime:      d.Timestamp("user_created_time"),
		UserUpdatedTime:      d.Timestamp("user_updated_time"),
		EncryptionCipherText: d.OptString("encryption_cipher_text"),
		EncryptionApplied:    boolToInt(d.Bool("encryption_applied")),
		IsShared:             boolToInt(d.Bool("is_shared")),
	}, nil
}

// EncodeResource renders a Resource's metadata record to its wire document.
// The binary payload is not part of this document; Resource.BlobPath names
// its remote path. The sync engine transfers only this metadata document and
// never uploads or downloads the payload itself.
func EncodeResource(r *model.Resource) string {
	s := NewSerializer(r.Filename, "", false)

	s.WriteString("id", r.ID.String())
	s.WriteString("mime", r.Mime)
	s.WriteTimestamp("created_time", r.CreatedTime)
	s.WriteTimestamp("updated_time", r.UpdatedTime)
	s.WriteTimestamp("user_created_time", r.UserCreatedTime)
	s.WriteTimestamp("user_updated_time", r.UserUpdatedTime)
	s.WriteString("file_extension", r.FileExtension)
	s.WriteString("encryption_cipher_text", r.EncryptionCipherText)
	s.WriteBool("encryption_applied", r.EncryptionApplied != 0)
	s.WriteBool("encryption_blob_encrypted", r.EncryptionBlobEncrypted != 0)
	s.WriteInt64("size", r.Size)
	s.WriteBool("is_shared", r.IsShared != 0)
	s.WriteString("share_id", r.ShareID)
	s.WriteString("master_key_id", r.MasterKeyID)
	s.WriteKind(model.KindResource)

	return s.Finish()
}

// DecodeResource parses a wire document into a Resource.
func DecodeResource(doc string) (*model.Resource, error) {
	d := Parse(doc)

	k, err := d.Kind()
	if err != nil {
		return nil, err
	}

	if k != model.KindResource {
		return nil, fmt.Errorf("wire: expected resource, got %s", k)
	}

	return &model.Resource{
		Filename:                d.Title,
		ID:                      model.ID(d.OptString("id")),
		Mime:                    d.OptString("mime"),
		CreatedTime:             d.Timestamp("created_time"),
		UpdatedTime:             d.Timestamp("updated_time"),
		UserCreatedTime:         d.Timestamp("user_created_time"),
		UserUpdatedTime:         d.Timestamp("user_updated_time"),
		FileExtension:           d.OptString("file_extension"),
		EncryptionCipherText:    d.OptString("encryption_cipher_text"),
		EncryptionApplied:       boolToInt(d.Bool("encryption_applied")),
		EncryptionBlobEncrypted: boolToInt(d.Bool("encryption_blob_encrypted")),
		Size:                    d.Int64("size"),
		IsShared:                boolToInt(d.Bool("is_shared")),
		ShareID:                 d.OptString("share_id"),
		MasterKeyID:             d.OptString("master_key_id"),
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
