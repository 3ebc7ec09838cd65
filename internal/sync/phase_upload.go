package sync

import (
	"context"
	"errors"

	"github.com/noteforge/joplin-sync-go/internal/filedriver"
	"github.com/noteforge/joplin-sync-go/internal/model"
	"github.com/noteforge/joplin-sync-go/internal/wire"
)

// runUploadPhase is Phase 2: push every locally dirty item. Uploads run
// sequentially, one item at a time — unlike the delete and pull phases,
// each upload's outcome (plain put vs. conflict copy) depends on a
// stat-then-compare decision that must see a consistent remote state, so
// concurrent uploads would make conflict detection racy against itself.
func (e *Engine) runUploadPhase(ctx context.Context, report *SyncReport) error {
	dirty, err := e.store.ListDirtySyncItems(ctx, e.target)
	if err != nil {
		return err
	}

	if len(dirty) == 0 {
		return nil
	}

	e.logger.Info("sync: phase 2 upload", "count", len(dirty))

	for _, si := range dirty {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := e.uploadOne(ctx, si, report); err != nil {
			report.recordError("upload", si.ItemID.String(), err)
		}
	}

	return nil
}

func (e *Engine) uploadOne(ctx context.Context, si model.SyncItem, report *SyncReport) error {
	path := si.ItemID.Filename()

	remoteStat, statErr := e.driver.Stat(ctx, path)

	switch {
	case errors.Is(statErr, filedriver.ErrNotExist):
		return e.uploadAgainstAbsentRemote(ctx, si, path, report)

	case statErr != nil:
		return statErr

	default:
		return e.uploadAgainstExistingRemote(ctx, si, remoteStat, path, report)
	}
}

// uploadAgainstAbsentRemote implements Phase 2 step 3: nothing exists at
// path on the remote.
func (e *Engine) uploadAgainstAbsentRemote(ctx context.Context, si model.SyncItem, path string, report *SyncReport) error {
	if si.SyncTime.Zero() {
		// Never synced before: first upload, not a conflict.
		return e.putAndMarkSynced(ctx, si, path, report)
	}

	// Previously synced, but the remote item is gone while we still hold
	// unpushed local changes: another client deleted it. CONFLICT.
	if si.ItemKind == model.KindNote {
		local, err := e.store.GetNote(ctx, si.ItemID)
		if err != nil {
			return err
		}

		if err := e.createConflictCopy(ctx, local); err != nil {
			return err
		}

		report.ConflictNoteCount++
	} else {
		report.OtherConflictCount++
	}

	if err := e.store.DeleteItemAnyKind(ctx, si.ItemID); err != nil {
		return err
	}

	return e.store.DeleteSyncItem(ctx, si.ItemID, e.target)
}

// uploadAgainstExistingRemote implements Phase 2 steps 1-2: the remote
// already holds something at path.
func (e *Engine) uploadAgainstExistingRemote(ctx context.Context, si model.SyncItem, remoteStat filedriver.Stat, path string, report *SyncReport) error {
	if !remoteStat.UpdatedTime.After(si.SyncTime.Time()) {
		// The remote hasn't moved since we last synced this item: local is
		// strictly newer, plain re-upload.
		return e.putAndMarkSynced(ctx, si, path, report)
	}

	// Both sides changed since our last sync: CONFLICT.
	if si.ItemKind != model.KindNote {
		// Every non-note kind is last-writer-wins: remote overwrites local,
		// no copy.
		remoteText, err := e.driver.GetText(ctx, path)
		if err != nil {
			return err
		}

		if _, err := e.applyIncomingDoc(ctx, remoteText); err != nil {
			return err
		}

		report.OtherConflictCount++

		return e.markSynced(ctx, si)
	}

	remoteText, err := e.driver.GetText(ctx, path)
	if err != nil {
		return err
	}

	remoteNote, err := wire.DecodeNote(remoteText)
	if err != nil {
		return err
	}

	local, err := e.store.GetNote(ctx, si.ItemID)
	if err != nil {
		return err
	}

	created, err := e.resolveNoteConflict(ctx, local, remoteNote)
	if err != nil {
		return err
	}

	if created {
		report.ConflictNoteCount++
	}

	// The remote version always wins locally from here — the conflict
	// copy (if one was made) already preserved the local edit, it doesn't
	// change which copy the original note's row holds.
	if err := e.store.PutNote(ctx, remoteNote); err != nil {
		return err
	}

	return e.markSynced(ctx, si)
}

func (e *Engine) putAndMarkSynced(ctx context.Context, si model.SyncItem, path string, report *SyncReport) error {
	doc, err := e.encodeItem(ctx, si.ItemID, si.ItemKind)
	if err != nil {
		return err
	}

	if err := e.driver.PutText(ctx, path, doc); err != nil {
		return err
	}

	if err := e.markSynced(ctx, si); err != nil {
		return err
	}

	report.UploadCount++

	return nil
}

func (e *Engine) markSynced(ctx context.Context, si model.SyncItem) error {
	si.MarkSynced()
	return e.store.PutSyncItem(ctx, si)
}
