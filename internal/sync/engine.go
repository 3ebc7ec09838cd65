package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/noteforge/joplin-sync-go/internal/filedriver"
	"github.com/noteforge/joplin-sync-go/internal/lock"
	"github.com/noteforge/joplin-sync-go/internal/model"
	"github.com/noteforge/joplin-sync-go/internal/store"
	"github.com/noteforge/joplin-sync-go/internal/synctarget"
)

// Engine is the Synchronizer: it owns the Item Store, the remote Driver,
// and the lock handler, and drives the three-phase reconciliation loop
// between them. One Engine corresponds to one configured sync target.
type Engine struct {
	store  *store.Store
	driver filedriver.Driver

	clientID string
	target   model.SyncTarget

	logger      *slog.Logger
	lockHandler *lock.Handler

	deleteConcurrency int
	pullConcurrency   int
}

// NewEngine builds an Engine from cfg, filling in any zero-valued fields
// with resolveConfig's defaults.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	cfg = resolveConfig(cfg)

	if cfg.Store == nil {
		return nil, errors.New("sync: NewEngine requires a Store")
	}

	if cfg.Driver == nil {
		return nil, errors.New("sync: NewEngine requires a Driver")
	}

	return &Engine{
		store:             cfg.Store,
		driver:            cfg.Driver,
		clientID:          cfg.ClientID,
		target:            cfg.Target,
		logger:            cfg.Logger,
		lockHandler:       lock.NewHandler(cfg.Driver, cfg.ClientID, cfg.Logger),
		deleteConcurrency: cfg.DeleteConcurrency,
		pullConcurrency:   cfg.PullConcurrency,
	}, nil
}

// RunOnce performs one full sync cycle: verify the remote sync target,
// acquire the sync lock, run the three phases in order, then release the
// lock and persist bookkeeping. Each phase sees whatever the previous one
// left behind — Phase 2 may upload a note that Phase 3 then sees reflected
// unchanged in its own delta page, which is harmless since pulling back a
// note this client just wrote is a no-op apply.
func (e *Engine) RunOnce(ctx context.Context) (*SyncReport, error) {
	start := time.Now()

	if _, err := synctarget.Verify(ctx, e.driver); err != nil {
		return nil, fmt.Errorf("sync: sync target check failed: %w", err)
	}

	release, err := e.lockHandler.AcquireSync(ctx)
	if err != nil {
		return nil, err
	}

	defer func() {
		if releaseErr := release(context.WithoutCancel(ctx)); releaseErr != nil {
			e.logger.Error("sync: releasing lock", "error", releaseErr)
		}
	}()

	report := &SyncReport{}

	if err := e.runDeletePhase(ctx, report); err != nil {
		report.ElapsedTime = time.Since(start)
		return report, fmt.Errorf("sync: delete-remote phase: %w", err)
	}

	if err := e.runUploadPhase(ctx, report); err != nil {
		report.ElapsedTime = time.Since(start)
		return report, fmt.Errorf("sync: upload phase: %w", err)
	}

	if err := e.runPullPhase(ctx, report); err != nil {
		report.ElapsedTime = time.Since(start)
		return report, fmt.Errorf("sync: pull-delta phase: %w", err)
	}

	if err := e.store.PutSetting(ctx, model.SettingLastSyncTime, model.Now().String()); err != nil {
		report.ElapsedTime = time.Since(start)
		return report, fmt.Errorf("sync: recording last sync time: %w", err)
	}

	report.ElapsedTime = time.Since(start)

	e.logger.Info("sync: run complete",
		"delete_remote", report.DeleteRemoteCount, "uploaded", report.UploadCount,
		"pulled", report.PullCount, "deleted_local", report.DeleteCount,
		"conflict_notes", report.ConflictNoteCount, "other_conflicts", report.OtherConflictCount,
		"errors", len(report.Errors), "elapsed", report.ElapsedTime)

	return report, nil
}
