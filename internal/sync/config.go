// Package sync implements the Synchronizer: the three-phase reconciliation
// loop (delete-remote, upload, pull-delta) that keeps the local Item Store
// and a remote Joplin Server in agreement, plus the conflict-copy policy
// invoked when a note changed on both sides between runs.
package sync

import (
	"log/slog"

	"github.com/noteforge/joplin-sync-go/internal/filedriver"
	"github.com/noteforge/joplin-sync-go/internal/model"
	"github.com/noteforge/joplin-sync-go/internal/store"
)

// EngineConfig bundles everything an Engine needs. Struct-based
// configuration avoids a constructor with an unreadable parameter list as
// this core grows more dependencies.
type EngineConfig struct {
	Store    *store.Store
	Driver   filedriver.Driver
	ClientID string
	Target   model.SyncTarget
	Logger   *slog.Logger

	// DeleteConcurrency and PullConcurrency bound Phase 1 and Phase 3's
	// worker pools. Phase 2 (upload) always runs sequentially — each
	// upload's conflict decision depends on a stat-then-compare against a
	// consistent remote state, so there is no equivalent upload knob.
	DeleteConcurrency int
	PullConcurrency   int
}

// resolveConfig fills in defaults for zero-valued fields.
func resolveConfig(cfg EngineConfig) EngineConfig {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.DeleteConcurrency <= 0 {
		cfg.DeleteConcurrency = 8
	}

	if cfg.PullConcurrency <= 0 {
		cfg.PullConcurrency = 8
	}

	if cfg.Target == 0 {
		cfg.Target = 1
	}

	return cfg
}
