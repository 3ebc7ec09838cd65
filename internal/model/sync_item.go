package model

// SyncTarget identifies a configured remote. This core only ever runs
// against a single target at a time, but the column exists (as it does in
// the original data model) so a future multi-target setup needs no schema
// change.
type SyncTarget int64

// UpdateSource distinguishes an edit the local app made from an edit the
// Synchronizer applied while pulling a remote delta. It controls which of
// SyncItem's two clocks (SyncTime vs UpdateTime) advances.
type UpdateSource int

const (
	// LocalEdit means a caller (the note-taking app, this core's own
	// conflict-copy generator) changed the item. UpdateTime advances;
	// SyncTime is left alone so the next sync run knows to push it.
	LocalEdit UpdateSource = iota
	// RemoteSync means the Synchronizer just wrote this item after pulling
	// it from the remote delta stream. SyncTime advances to "now";
	// UpdateTime is left alone because the item isn't locally dirty.
	RemoteSync
)

// SyncItem tracks one item's dirty/clean state against one sync target.
// SyncTime is the last moment this item's content was known to match the
// remote; UpdateTime is the last local edit. SyncTime < UpdateTime means
// the item has local changes still to push.
type SyncItem struct {
	ItemID     ID
	ItemKind   Kind
	SyncTarget SyncTarget

	SyncTime   Timestamp
	UpdateTime Timestamp
}

// NewSyncItem creates the SyncItem row for an item that was just touched,
// with the clock semantics driven by source:
//   - RemoteSync: SyncTime = now, UpdateTime = zero (item is clean)
//   - LocalEdit:  SyncTime = zero, UpdateTime = now (item is dirty)
func NewSyncItem(itemID ID, kind Kind, target SyncTarget, source UpdateSource) SyncItem {
	si := SyncItem{ItemID: itemID, ItemKind: kind, SyncTarget: target}

	switch source {
	case RemoteSync:
		si.SyncTime = Now()
	case LocalEdit:
		si.Touch()
	}

	return si
}

// Dirty reports whether this item has local changes not yet pushed.
func (si SyncItem) Dirty() bool {
	return si.SyncTime < si.UpdateTime
}

// Touch records a fresh local edit: UpdateTime advances, SyncTime is left
// untouched so the item is (or remains) dirty. If the clock hasn't moved
// past SyncTime — two edits landing in the same millisecond — UpdateTime is
// bumped to SyncTime+1 instead, so the item is still reported dirty.
func (si *SyncItem) Touch() {
	now := Now()
	if now <= si.SyncTime {
		now = si.SyncTime + 1
	}

	si.UpdateTime = now
}

// MarkSynced records that the item's current content now matches the
// remote: SyncTime advances to now.
func (si *SyncItem) MarkSynced() {
	si.SyncTime = Now()
}
