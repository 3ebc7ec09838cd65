package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// PutTag inserts or replaces a tag row.
func (s *Store) PutTag(ctx context.Context, t *model.Tag) error {
	const q = `
		INSERT INTO tags (
			id, title, created_time, updated_time, user_created_time, user_updated_time,
			encryption_cipher_text, encryption_applied, is_shared, parent_id
		) VALUES (?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, created_time=excluded.created_time,
			updated_time=excluded.updated_time, user_created_time=excluded.user_created_time,
			user_updated_time=excluded.user_updated_time,
			encryption_cipher_text=excluded.encryption_cipher_text,
			encryption_applied=excluded.encryption_applied, is_shared=excluded.is_shared,
			parent_id=excluded.parent_id
	`

	_, err := s.db.ExecContext(ctx, q,
		t.ID, t.Title, t.CreatedTime, t.UpdatedTime, t.UserCreatedTime, t.UserUpdatedTime,
		t.EncryptionCipherText, t.EncryptionApplied, t.IsShared, t.ParentID,
	)
	if err != nil {
		return fmt.Errorf("store: putting tag %s: %w", t.ID, err)
	}

	return nil
}

// GetTag fetches a tag by id.
func (s *Store) GetTag(ctx context.Context, id model.ID) (*model.Tag, error) {
	const q = `
		SELECT id, title, created_time, updated_time, user_created_time, user_updated_time,
			encryption_cipher_text, encryption_applied, is_shared, parent_id
		FROM tags WHERE id = ?`

	t := &model.Tag{}

	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&t.ID, &t.Title, &t.CreatedTime, &t.UpdatedTime, &t.UserCreatedTime, &t.UserUpdatedTime,
		&t.EncryptionCipherText, &t.EncryptionApplied, &t.IsShared, &t.ParentID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("store: getting tag %s: %w", id, err)
	}

	return t, nil
}

// DeleteTag removes a tag row.
func (s *Store) DeleteTag(ctx context.Context, id model.ID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: deleting tag %s: %w", id, err)
	}

	return nil
}

// PutNoteTag inserts or replaces a note/tag join row.
func (s *Store) PutNoteTag(ctx context.Context, nt *model.NoteTag) error {
	const q = `
		INSERT INTO note_tags (
			id, note_id, tag_id, created_time, updated_time, user_created_time,
			user_updated_time, encryption_cipher_text, encryption_applied, is_shared
		) VALUES (?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			note_id=excluded.note_id, tag_id=excluded.tag_id,
			created_time=excluded.created_time, updated_time=excluded.updated_time,
			user_created_time=excluded.user_created_time,
			user_updated_time=excluded.user_updated_time,
			encryption_cipher_text=excluded.encryption_cipher_text,
			encryption_applied=excluded.encryption_applied, is_shared=excluded.is_shared
	`

	_, err := s.db.ExecContext(ctx, q,
		nt.ID, nt.NoteID, nt.TagID, nt.CreatedTime, nt.UpdatedTime, nt.UserCreatedTime,
		nt.UserUpdatedTime, nt.EncryptionCipherText, nt.EncryptionApplied, nt.IsShared,
	)
	if err != nil {
		return fmt.Errorf("store: putting note_tag %s: %w", nt.ID, err)
	}

	return nil
}

// GetNoteTag fetches a note/tag join row by id.
func (s *Store) GetNoteTag(ctx context.Context, id model.ID) (*model.NoteTag, error) {
	const q = `
		SELECT id, note_id, tag_id, created_time, updated_time, user_created_time,
			user_updated_time, encryption_cipher_text, encryption_applied, is_shared
		FROM note_tags WHERE id = ?`

	nt := &model.NoteTag{}

	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&nt.ID, &nt.NoteID, &nt.TagID, &nt.CreatedTime, &nt.UpdatedTime, &nt.UserCreatedTime,
		&nt.UserUpdatedTime, &nt.EncryptionCipherText, &nt.EncryptionApplied, &nt.IsShared,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("store: getting note_tag %s: %w", id, err)
	}

	return nt, nil
}

// DeleteNoteTag removes a note/tag join row.
func (s *Store) DeleteNoteTag(ctx context.Context, id model.ID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM note_tags WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: deleting note_tag %s: %w", id, err)
	}

	return nil
}

// TagsForNote returns every tag attached to noteID.
func (s *Store) TagsForNote(ctx context.Context, noteID model.ID) ([]*model.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tag_id FROM note_tags WHERE note_id = ?`, noteID)
	if err != nil {
		return nil, fmt.Errorf("store: listing tags for note %s: %w", noteID, err)
	}
	defer rows.Close()

	var tagIDs []model.ID

	for rows.Next() {
		var id model.ID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scanning tag id: %w", err)
		}

		tagIDs = append(tagIDs, id)
	}

	tags := make([]*model.Tag, 0, len(tagIDs))

	for _, id := range tagIDs {
		tag, err := s.GetTag(ctx, id)
		if err != nil {
			return nil, err
		}

		tags = append(tags, tag)
	}

	return tags, nil
}
