package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// ErrNotFound is returned by Get* methods when no row matches the id.
var ErrNotFound = errors.New("store: record not found")

// PutNote inserts or replaces a note row.
func (s *Store) PutNote(ctx context.Context, n *model.Note) error {
	const q = `
		INSERT INTO notes (
			id, parent_id, title, body, created_time, updated_time, is_conflict,
			latitude, longitude, altitude, author, source_url, is_todo, todo_due,
			todo_completed, source, source_application, application_data, sort_order,
			user_created_time, user_updated_time, encryption_cipher_text,
			encryption_applied, markup_language, is_shared, share_id,
			conflict_original_id, master_key_id
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			parent_id=excluded.parent_id, title=excluded.title, body=excluded.body,
			created_time=excluded.created_time, updated_time=excluded.updated_time,
			is_conflict=excluded.is_conflict, latitude=excluded.latitude,
			longitude=excluded.longitude, altitude=excluded.altitude,
			author=excluded.author, source_url=excluded.source_url,
			is_todo=excluded.is_todo, todo_due=excluded.todo_due,
			todo_completed=excluded.todo_completed, source=excluded.source,
			source_application=excluded.source_application,
			application_data=excluded.application_data, sort_order=excluded.sort_order,
			user_created_time=excluded.user_created_time,
			user_updated_time=excluded.user_updated_time,
			encryption_cipher_text=excluded.encryption_cipher_text,
			encryption_applied=excluded.encryption_applied,
			markup_language=excluded.markup_language, is_shared=excluded.is_shared,
			share_id=excluded.share_id, conflict_original_id=excluded.conflict_original_id,
			master_key_id=excluded.master_key_id
	`

	_, err := s.db.ExecContext(ctx, q,
		n.ID, n.ParentID, n.Title, n.Body, n.CreatedTime, n.UpdatedTime, n.IsConflict,
		n.Latitude, n.Longitude, n.Altitude, n.Author, n.SourceURL, n.IsTodo, n.TodoDue,
		n.TodoCompleted, n.Source, n.SourceApplication, n.ApplicationData, n.Order,
		n.UserCreatedTime, n.UserUpdatedTime, n.EncryptionCipherText,
		n.EncryptionApplied, n.MarkupLanguage, n.IsShared, n.ShareID,
		n.ConflictOriginalID, n.MasterKeyID,
	)
	if err != nil {
		return fmt.Errorf("store: putting note %s: %w", n.ID, err)
	}

	return nil
}

// GetNote fetches a note by id.
func (s *Store) GetNote(ctx context.Context, id model.ID) (*model.Note, error) {
	const q = `
		SELECT id, parent_id, title, body, created_time, updated_time, is_conflict,
			latitude, longitude, altitude, author, source_url, is_todo, todo_due,
			todo_completed, source, source_application, application_data, sort_order,
			user_created_time, user_updated_time, encryption_cipher_text,
			encryption_applied, markup_language, is_shared, share_id,
			conflict_original_id, master_key_id
		FROM notes WHERE id = ?`

	row := s.db.QueryRowContext(ctx, q, id)

	n := &model.Note{}

	err := row.Scan(
		&n.ID, &n.ParentID, &n.Title, &n.Body, &n.CreatedTime, &n.UpdatedTime, &n.IsConflict,
		&n.Latitude, &n.Longitude, &n.Altitude, &n.Author, &n.SourceURL, &n.IsTodo, &n.TodoDue,
		&n.TodoCompleted, &n.Source, &n.SourceApplication, &n.ApplicationData, &n.Order,
		&n.UserCreatedTime, &n.UserUpdatedTime, &n.EncryptionCipherText,
		&n.EncryptionApplied, &n.MarkupLanguage, &n.IsShared, &n.ShareID,
		&n.ConflictOriginalID, &n.MasterKeyID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("store: getting note %s: %w", id, err)
	}

	return n, nil
}

// DeleteNote removes a note row. Deleting an absent row is not an error.
func (s *Store) DeleteNote(ctx context.Context, id model.ID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: deleting note %s: %w", id, err)
	}

	return nil
}

// ListNotesByParent returns every note directly under parentID.
func (s *Store) ListNotesByParent(ctx context.Context, parentID model.ID) ([]*model.Note, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM notes WHERE parent_id = ?`, parentID)
	if err != nil {
		return nil, fmt.Errorf("store: listing notes under %s: %w", parentID, err)
	}
	defer rows.Close()

	var ids []model.ID

	for rows.Next() {
		var id model.ID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scanning note id: %w", err)
		}

		ids = append(ids, id)
	}

	notes := make([]*model.Note, 0, len(ids))

	for _, id := range ids {
		n, err := s.GetNote(ctx, id)
		if err != nil {
			return nil, err
		}

		notes = append(notes, n)
	}

	return notes, nil
}

// ListConflictNotes returns every note the Synchronizer's conflict copy
// policy has created (is_conflict = 1), newest first.
func (s *Store) ListConflictNotes(ctx context.Context) ([]*model.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM notes WHERE is_conflict = 1 ORDER BY updated_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: listing conflict notes: %w", err)
	}
	defer rows.Close()

	var ids []model.ID

	for rows.Next() {
		var id model.ID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scanning conflict note id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterating conflict notes: %w", err)
	}

	notes := make([]*model.Note, 0, len(ids))

	for _, id := range ids {
		n, err := s.GetNote(ctx, id)
		if err != nil {
			return nil, err
		}

		notes = append(notes, n)
	}

	return notes, nil
}
