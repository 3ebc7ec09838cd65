package sync

import (
	"context"
	"fmt"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// resolveNoteConflict implements Phase 2's conflict policy for the
// "remote exists and changed since our last sync" case: a fresh note is
// created holding the local pre-sync content if, and only if, local and
// remote genuinely differ — the remote copy is never silently overwritten
// or discarded when content actually diverged. If title and body are
// identical the two edits didn't really conflict and no copy is made.
//
// Returns true if a conflict copy was created. Callers still overwrite the
// local note with remote afterward — the copy preserves the local edit
// that would otherwise be lost, it doesn't change which version wins.
func (e *Engine) resolveNoteConflict(ctx context.Context, local *model.Note, remote *model.Note) (bool, error) {
	if local.Title == remote.Title && local.Body == remote.Body {
		return false, nil
	}

	if local.ID != remote.ID {
		return false, fmt.Errorf("sync: conflict handler called across different note ids (%s vs %s)", local.ID, remote.ID)
	}

	if err := e.createConflictCopy(ctx, local); err != nil {
		return false, err
	}

	return true, nil
}

// createConflictCopy duplicates local's current content into a fresh note
// with is_conflict=true and conflict_original_id pointing back to local,
// recorded as a LocalEdit so the copy itself gets uploaded on the next run.
// Used both when a remote edit conflicts with a dirty local note (content
// differs) and when the remote item was deleted out from under a dirty
// local note — in the latter case there is no remote content to compare
// against, so the copy is unconditional.
func (e *Engine) createConflictCopy(ctx context.Context, local *model.Note) error {
	copyNote := &model.Note{
		ID:                 model.NewID(),
		ParentID:           local.ParentID,
		Title:              local.Title,
		Body:               local.Body,
		CreatedTime:        model.Now(),
		UpdatedTime:        model.Now(),
		IsConflict:         1,
		Latitude:           local.Latitude,
		Longitude:          local.Longitude,
		Altitude:           local.Altitude,
		Author:             local.Author,
		SourceURL:          local.SourceURL,
		IsTodo:             local.IsTodo,
		TodoDue:            local.TodoDue,
		TodoCompleted:      local.TodoCompleted,
		Source:             local.Source,
		SourceApplication:  local.SourceApplication,
		ApplicationData:    local.ApplicationData,
		UserCreatedTime:    local.UserCreatedTime,
		UserUpdatedTime:    model.Now(),
		MarkupLanguage:     local.MarkupLanguage,
		ConflictOriginalID: local.ID,
	}

	if err := e.store.PutNote(ctx, copyNote); err != nil {
		return fmt.Errorf("sync: saving conflict copy for %s: %w", local.ID, err)
	}

	si := model.NewSyncItem(copyNote.ID, model.KindNote, e.target, model.LocalEdit)
	if err := e.store.PutSyncItem(ctx, si); err != nil {
		return fmt.Errorf("sync: recording sync state for conflict copy %s: %w", copyNote.ID, err)
	}

	e.logger.Info("sync: conflict copy created",
		"original_id", local.ID.String(), "copy_id", copyNote.ID.String())

	return nil
}
