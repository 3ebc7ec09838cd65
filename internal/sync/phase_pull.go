package sync

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/noteforge/joplin-sync-go/internal/filedriver"
	"github.com/noteforge/joplin-sync-go/internal/model"
	"github.com/noteforge/joplin-sync-go/internal/store"
)

// runPullPhase is Phase 3: walk the remote's delta stream page by page,
// fetching each page's item bodies concurrently but applying them to the
// Item Store strictly in the order the page reported them — later items in
// a page may depend on earlier ones (a note_tag arriving before its note,
// for instance, is harmless, but applying out of order would make that
// harder to reason about and the teacher's own transfer pool keeps
// application ordered for the same reason).
func (e *Engine) runPullPhase(ctx context.Context, report *SyncReport) error {
	cursor, err := e.store.GetSetting(ctx, model.SettingDeltaCursor)
	if err != nil {
		return err
	}

	for {
		page, err := e.driver.Delta(ctx, cursor)
		if errors.Is(err, filedriver.ErrResyncRequired) {
			e.logger.Warn("sync: delta cursor rejected, performing full resync")

			cursor = ""

			page, err = e.driver.Delta(ctx, cursor)
		}

		if err != nil {
			return err
		}

		if err := e.applyPage(ctx, page, report); err != nil {
			return err
		}

		cursor = page.Cursor

		if err := e.store.PutSetting(ctx, model.SettingDeltaCursor, cursor); err != nil {
			return err
		}

		if !page.HasMore {
			break
		}
	}

	return nil
}

// fetchResult pairs a delta item with its fetched body (or error), keeping
// a page's original order so applyPage can apply sequentially.
type fetchResult struct {
	item filedriver.DeltaItem
	text string
	err  error
}

func (e *Engine) applyPage(ctx context.Context, page filedriver.DeltaPage, report *SyncReport) error {
	if len(page.Items) == 0 {
		return nil
	}

	e.logger.Info("sync: phase 3 pull-delta page", "count", len(page.Items))

	results := make([]fetchResult, len(page.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.pullConcurrency)

	for i, item := range page.Items {
		i, item := i, item

		if item.Deleted || strings.HasPrefix(item.Path, ".resource/") {
			results[i] = fetchResult{item: item}
			continue
		}

		g.Go(func() error {
			text, err := e.driver.GetText(gctx, item.Path)
			results[i] = fetchResult{item: item, text: text, err: err}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		if err := e.applyOne(ctx, r, report); err != nil {
			report.recordError("pull", r.item.Path, err)
		}
	}

	return nil
}

func (e *Engine) applyOne(ctx context.Context, r fetchResult, report *SyncReport) error {
	id := idFromPath(r.item.Path)

	if r.item.Deleted {
		_, err := e.store.GetSyncItem(ctx, id, e.target)
		if errors.Is(err, store.ErrNotFound) {
			// Nothing locally tracked under this id: nothing to delete.
			return nil
		}

		if err != nil {
			return err
		}

		if err := e.store.DeleteItemAnyKind(ctx, id); err != nil {
			return err
		}

		if err := e.store.DeleteSyncItem(ctx, id, e.target); err != nil {
			return err
		}

		report.DeleteCount++

		return nil
	}

	if strings.HasPrefix(r.item.Path, ".resource/") {
		// Resource blob payloads are not item-store records; a resource's
		// metadata record (fetched as a plain item above) is what drives
		// the Item Store. Blob bytes are not downloaded by this core.
		return nil
	}

	if !strings.HasSuffix(r.item.Path, ".md") {
		// Not an item document (info.json, for instance): nothing to apply.
		return nil
	}

	if r.err != nil {
		return r.err
	}

	local, err := e.store.GetSyncItem(ctx, id, e.target)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if err == nil && local.SyncTime.Time().After(r.item.Stat.UpdatedTime) {
		// Local has been updated since this remote version was observed;
		// Phase 2 on the next run handles reconciling it. Skip.
		return nil
	}

	kind, err := e.applyIncomingDoc(ctx, r.text)
	if err != nil {
		return err
	}

	if kind == model.KindUnsupported {
		// Unrecognized type_ tag: round-trips as a no-op, per the wire
		// format's forward-compatibility rule. Still advances the cursor
		// via the caller, just doesn't count as pulled.
		return nil
	}

	si := model.NewSyncItem(id, kind, e.target, model.RemoteSync)

	if err := e.store.PutSyncItem(ctx, si); err != nil {
		return err
	}

	report.PullCount++

	return nil
}

// idFromPath recovers the item id from its remote filename ("<id>.md").
func idFromPath(path string) model.ID {
	base := path
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		base = path[idx+1:]
	}

	return model.ID(strings.TrimSuffix(base, ".md"))
}
