package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// PutSyncItem inserts or replaces a SyncItem row.
func (s *Store) PutSyncItem(ctx context.Context, si model.SyncItem) error {
	const q = `
		INSERT INTO sync_items (item_id, item_kind, sync_target, sync_time, update_time)
		VALUES (?,?,?,?,?)
		ON CONFLICT(item_id, sync_target) DO UPDATE SET
			item_kind=excluded.item_kind, sync_time=excluded.sync_time,
			update_time=excluded.update_time
	`

	_, err := s.db.ExecContext(ctx, q, si.ItemID, si.ItemKind, si.SyncTarget, si.SyncTime, si.UpdateTime)
	if err != nil {
		return fmt.Errorf("store: putting sync_item %s: %w", si.ItemID, err)
	}

	return nil
}

// GetSyncItem fetches the SyncItem row for itemID against target.
func (s *Store) GetSyncItem(ctx context.Context, itemID model.ID, target model.SyncTarget) (model.SyncItem, error) {
	const q = `SELECT item_id, item_kind, sync_target, sync_time, update_time
		FROM sync_items WHERE item_id = ? AND sync_target = ?`

	var si model.SyncItem

	err := s.db.QueryRowContext(ctx, q, itemID, target).
		Scan(&si.ItemID, &si.ItemKind, &si.SyncTarget, &si.SyncTime, &si.UpdateTime)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SyncItem{}, ErrNotFound
	}

	if err != nil {
		return model.SyncItem{}, fmt.Errorf("store: getting sync_item %s: %w", itemID, err)
	}

	return si, nil
}

// DeleteSyncItem removes the SyncItem row for itemID.
func (s *Store) DeleteSyncItem(ctx context.Context, itemID model.ID, target model.SyncTarget) error {
	const q = `DELETE FROM sync_items WHERE item_id = ? AND sync_target = ?`

	if _, err := s.db.ExecContext(ctx, q, itemID, target); err != nil {
		return fmt.Errorf("store: deleting sync_item %s: %w", itemID, err)
	}

	return nil
}

// ListDirtySyncItems returns every SyncItem under target whose content has
// not yet been pushed (sync_time < update_time) — Phase 2's upload queue.
func (s *Store) ListDirtySyncItems(ctx context.Context, target model.SyncTarget) ([]model.SyncItem, error) {
	const q = `SELECT item_id, item_kind, sync_target, sync_time, update_time
		FROM sync_items WHERE sync_target = ? AND sync_time < update_time`

	rows, err := s.db.QueryContext(ctx, q, target)
	if err != nil {
		return nil, fmt.Errorf("store: listing dirty sync_items: %w", err)
	}
	defer rows.Close()

	var out []model.SyncItem

	for rows.Next() {
		var si model.SyncItem
		if err := rows.Scan(&si.ItemID, &si.ItemKind, &si.SyncTarget, &si.SyncTime, &si.UpdateTime); err != nil {
			return nil, fmt.Errorf("store: scanning sync_item: %w", err)
		}

		out = append(out, si)
	}

	return out, nil
}

// PutDeletedItem inserts a tombstone for an item that was just deleted
// locally.
func (s *Store) PutDeletedItem(ctx context.Context, di model.DeletedItem) error {
	const q = `INSERT INTO deleted_items (item_id, item_kind, deleted_time) VALUES (?,?,?)`

	if _, err := s.db.ExecContext(ctx, q, di.ItemID, di.ItemKind, di.DeletedTime); err != nil {
		return fmt.Errorf("store: putting deleted_item %s: %w", di.ItemID, err)
	}

	return nil
}

// ListDeletedItems returns every pending tombstone — Phase 1's delete
// queue.
func (s *Store) ListDeletedItems(ctx context.Context) ([]model.DeletedItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, item_id, item_kind, deleted_time FROM deleted_items`)
	if err != nil {
		return nil, fmt.Errorf("store: listing deleted_items: %w", err)
	}
	defer rows.Close()

	var out []model.DeletedItem

	for rows.Next() {
		var di model.DeletedItem
		if err := rows.Scan(&di.ID, &di.ItemID, &di.ItemKind, &di.DeletedTime); err != nil {
			return nil, fmt.Errorf("store: scanning deleted_item: %w", err)
		}

		out = append(out, di)
	}

	return out, nil
}

// RemoveDeletedItem clears a tombstone once its remote delete is confirmed.
func (s *Store) RemoveDeletedItem(ctx context.Context, rowID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM deleted_items WHERE id = ?`, rowID); err != nil {
		return fmt.Errorf("store: removing deleted_item %d: %w", rowID, err)
	}

	return nil
}

// PruneStaleTombstones removes tombstones older than maxAgeMillis,
// preventing unbounded growth when a remote delete can never succeed
// (misconfigured driver, permanently unreachable remote). Supplemented
// feature — see SPEC_FULL.md §7.
func (s *Store) PruneStaleTombstones(ctx context.Context, maxAgeMillis int64) (int64, error) {
	cutoff := int64(model.Now()) - maxAgeMillis

	res, err := s.db.ExecContext(ctx, `DELETE FROM deleted_items WHERE deleted_time < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("store: pruning stale tombstones: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("store: counting pruned tombstones: %w", err)
	}

	return n, nil
}

// GetSetting reads a local setting, returning "" if absent.
func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var value string

	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("store: getting setting %s: %w", key, err)
	}

	return value, nil
}

// PutSetting writes a local setting.
func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	const q = `INSERT INTO settings (key, value) VALUES (?,?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value`

	if _, err := s.db.ExecContext(ctx, q, key, value); err != nil {
		return fmt.Errorf("store: putting setting %s: %w", key, err)
	}

	return nil
}
