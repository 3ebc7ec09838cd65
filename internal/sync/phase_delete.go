package sync

import (
	"context"
	"errors"
	gosync "sync"

	"golang.org/x/sync/errgroup"

	"github.com/noteforge/joplin-sync-go/internal/filedriver"
)

// runDeletePhase is Phase 1: push every pending tombstone to the remote.
// Deletes are independent of each other, so they run through a bounded
// worker pool; deleting a path that is already gone on the remote is not
// an error (Driver.Delete is idempotent), which is what makes this phase
// safe to re-run after a partial failure.
func (e *Engine) runDeletePhase(ctx context.Context, report *SyncReport) error {
	tombstones, err := e.store.ListDeletedItems(ctx)
	if err != nil {
		return err
	}

	if len(tombstones) == 0 {
		return nil
	}

	e.logger.Info("sync: phase 1 delete-remote", "count", len(tombstones))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.deleteConcurrency)

	var mu gosync.Mutex

	for _, ts := range tombstones {
		ts := ts

		g.Go(func() error {
			path := ts.ItemID.Filename()

			if err := e.driver.Delete(gctx, path); err != nil && !errors.Is(err, filedriver.ErrNotExist) {
				mu.Lock()
				report.recordError("delete", ts.ItemID.String(), err)
				mu.Unlock()

				return nil
			}

			if err := e.store.RemoveDeletedItem(gctx, ts.ID); err != nil {
				mu.Lock()
				report.recordError("delete", ts.ItemID.String(), err)
				mu.Unlock()

				return nil
			}

			if err := e.store.DeleteSyncItem(gctx, ts.ItemID, e.target); err != nil {
				mu.Lock()
				report.recordError("delete", ts.ItemID.String(), err)
				mu.Unlock()

				return nil
			}

			mu.Lock()
			report.DeleteRemoteCount++
			mu.Unlock()

			return nil
		})
	}

	return g.Wait()
}
