package sync

import "time"

// ActionError records one item-level failure that did not abort the run.
// Fatal errors (lock contention, a dead remote) abort RunOnce directly
// instead of being collected here.
type ActionError struct {
	ItemID string
	Phase  string
	Err    error
}

func (e ActionError) Error() string {
	return e.Phase + ": " + e.ItemID + ": " + e.Err.Error()
}

// SyncReport summarizes one RunOnce call — this core's SyncInfo: one
// counter per phase outcome, plus ElapsedTime for the whole run.
type SyncReport struct {
	// DeleteRemoteCount is Phase 1's tombstones consumed.
	DeleteRemoteCount int
	// UploadCount is Phase 2's plain (non-conflict) puts.
	UploadCount int
	// ConflictNoteCount is Phase 2's note conflict copies created, on
	// either the "both sides changed" or "remote deleted while dirty"
	// path.
	ConflictNoteCount int
	// OtherConflictCount is Phase 2's non-note conflicts, always
	// resolved remote-wins with no copy.
	OtherConflictCount int
	// DeleteCount is Phase 3's remote-sourced local deletes.
	DeleteCount int
	// PullCount is Phase 3's remote-sourced local writes, excluding
	// unsupported item kinds.
	PullCount int
	// TombstonesPruned is a count of stale tombstones dropped without ever
	// reaching the remote — not part of SyncInfo. RunOnce does not run a
	// retention sweep (Store.PruneStaleTombstones), so it leaves this at 0.
	TombstonesPruned int64
	// ElapsedTime is how long the whole RunOnce call took.
	ElapsedTime time.Duration

	Errors []ActionError
}

func (r *SyncReport) recordError(phase, itemID string, err error) {
	r.Errors = append(r.Errors, ActionError{ItemID: itemID, Phase: phase, Err: err})
}
