package store

import (
	"context"
	"fmt"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// DeleteItemAnyKind removes id from whichever item table it lives in. A
// remote delta's deleted entries carry no kind tag, so the pull phase
// doesn't know up front what kind of row it's clearing — this tries every
// table rather than requiring the caller to look the kind up first.
func (s *Store) DeleteItemAnyKind(ctx context.Context, id model.ID) error {
	tables := []string{"notes", "folders", "tags", "note_tags", "resources"}

	for _, table := range tables {
		q := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)

		if _, err := s.db.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("store: deleting %s from %s: %w", id, table, err)
		}
	}

	return nil
}
