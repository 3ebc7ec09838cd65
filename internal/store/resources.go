package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// PutResource inserts or replaces a resource metadata row.
func (s *Store) PutResource(ctx context.Context, r *model.Resource) error {
	const q = `
		INSERT INTO resources (
			id, mime, filename, created_time, updated_time, user_created_time,
			user_updated_time, file_extension, encryption_cipher_text, encryption_applied,
			encryption_blob_encrypted, size, is_shared, share_id, master_key_id
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			mime=excluded.mime, filename=excluded.filename,
			created_time=excluded.created_time, updated_time=excluded.updated_time,
			user_created_time=excluded.user_created_time,
			user_updated_time=excluded.user_updated_time,
			file_extension=excluded.file_extension,
			encryption_cipher_text=excluded.encryption_cipher_text,
			encryption_applied=excluded.encryption_applied,
			encryption_blob_encrypted=excluded.encryption_blob_encrypted,
			size=excluded.size, is_shared=excluded.is_shared, share_id=excluded.share_id,
			master_key_id=excluded.master_key_id
	`

	_, err := s.db.ExecContext(ctx, q,
		r.ID, r.Mime, r.Filename, r.CreatedTime, r.UpdatedTime, r.UserCreatedTime,
		r.UserUpdatedTime, r.FileExtension, r.EncryptionCipherText, r.EncryptionApplied,
		r.EncryptionBlobEncrypted, r.Size, r.IsShared, r.ShareID, r.MasterKeyID,
	)
	if err != nil {
		return fmt.Errorf("store: putting resource %s: %w", r.ID, err)
	}

	return nil
}

// GetResource fetches a resource's metadata row by id.
func (s *Store) GetResource(ctx context.Context, id model.ID) (*model.Resource, error) {
	const q = `
		SELECT id, mime, filename, created_time, updated_time, user_created_time,
			user_updated_time, file_extension, encryption_cipher_text, encryption_applied,
			encryption_blob_encrypted, size, is_shared, share_id, master_key_id
		FROM resources WHERE id = ?`

	r := &model.Resource{}

	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&r.ID, &r.Mime, &r.Filename, &r.CreatedTime, &r.UpdatedTime, &r.UserCreatedTime,
		&r.UserUpdatedTime, &r.FileExtension, &r.EncryptionCipherText, &r.EncryptionApplied,
		&r.EncryptionBlobEncrypted, &r.Size, &r.IsShared, &r.ShareID, &r.MasterKeyID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("store: getting resource %s: %w", id, err)
	}

	return r, nil
}

// DeleteResource removes a resource metadata row.
func (s *Store) DeleteResource(ctx context.Context, id model.ID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id); err != nil {
		return fmt.Errorf("store: deleting resource %s: %w", id, err)
	}

	return nil
}
