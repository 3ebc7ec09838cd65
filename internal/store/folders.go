package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// PutFolder inserts or replaces a folder row.
func (s *Store) PutFolder(ctx context.Context, f *model.Folder) error {
	const q = `
		INSERT INTO folders (
			id, title, created_time, updated_time, user_created_time, user_updated_time,
			encryption_cipher_text, encryption_applied, parent_id, is_shared, share_id,
			master_key_id, icon
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, created_time=excluded.created_time,
			updated_time=excluded.updated_time, user_created_time=excluded.user_created_time,
			user_updated_time=excluded.user_updated_time,
			encryption_cipher_text=excluded.encryption_cipher_text,
			encryption_applied=excluded.encryption_applied, parent_id=excluded.parent_id,
			is_shared=excluded.is_shared, share_id=excluded.share_id,
			master_key_id=excluded.master_key_id, icon=excluded.icon
	`

	_, err := s.db.ExecContext(ctx, q,
		f.ID, f.Title, f.CreatedTime, f.UpdatedTime, f.UserCreatedTime, f.UserUpdatedTime,
		f.EncryptionCipherText, f.EncryptionApplied, f.ParentID, f.IsShared, f.ShareID,
		f.MasterKeyID, f.Icon,
	)
	if err != nil {
		return fmt.Errorf("store: putting folder %s: %w", f.ID, err)
	}

	return nil
}

// GetFolder fetches a folder by id.
func (s *Store) GetFolder(ctx context.Context, id model.ID) (*model.Folder, error) {
	const q = `
		SELECT id, title, created_time, updated_time, user_created_time, user_updated_time,
			encryption_cipher_text, encryption_applied, parent_id, is_shared, share_id,
			master_key_id, icon
		FROM folders WHERE id = ?`

	f := &model.Folder{}

	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&f.ID, &f.Title, &f.CreatedTime, &f.UpdatedTime, &f.UserCreatedTime, &f.UserUpdatedTime,
		&f.EncryptionCipherText, &f.EncryptionApplied, &f.ParentID, &f.IsShared, &f.ShareID,
		&f.MasterKeyID, &f.Icon,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("store: getting folder %s: %w", id, err)
	}

	return f, nil
}

// DeleteFolder removes a folder row.
func (s *Store) DeleteFolder(ctx context.Context, id model.ID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: deleting folder %s: %w", id, err)
	}

	return nil
}

// ListFolders returns every folder.
func (s *Store) ListFolders(ctx context.Context) ([]*model.Folder, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM folders`)
	if err != nil {
		return nil, fmt.Errorf("store: listing folders: %w", err)
	}
	defer rows.Close()

	var ids []model.ID

	for rows.Next() {
		var id model.ID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scanning folder id: %w", err)
		}

		ids = append(ids, id)
	}

	folders := make([]*model.Folder, 0, len(ids))

	for _, id := range ids {
		f, err := s.GetFolder(ctx, id)
		if err != nil {
			return nil, err
		}

		folders = append(folders, f)
	}

	return folders, nil
}
