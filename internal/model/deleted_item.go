package model

// DeletedItem is a tombstone recording that an item was deleted locally
// and still needs the matching remote object removed. Rows are pruned once
// Phase 1 of a sync run confirms the remote delete (or the remote object
// was already gone).
type DeletedItem struct {
	ID          int64 // local auto-increment row id, not the item's own ID
	ItemID      ID
	ItemKind    Kind
	DeletedTime Timestamp
}

// NewDeletedItem stamps a tombstone for an item being deleted right now.
func NewDeletedItem(itemID ID, kind Kind) DeletedItem {
	return DeletedItem{
		ItemID:      itemID,
		ItemKind:    kind,
		DeletedTime: Now(),
	}
}
