package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/noteforge/joplin-sync-go/internal/config"
	"github.com/noteforge/joplin-sync-go/internal/sync"
	"github.com/noteforge/joplin-sync-go/internal/watch"
)

func newSyncCmd() *cobra.Command {
	var flagWatch bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize local notes with the configured Joplin Server",
		Long: `Run a one-shot sync cycle: delete remote items whose local tombstone
is pending, upload local changes, then pull the remote delta.

Use --watch to run continuously, triggered by local resource changes and
by the configured poll interval.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd, flagWatch)
		},
	}

	cmd.Flags().BoolVar(&flagWatch, "watch", false, "continuous sync, triggered by local changes and poll interval")

	return cmd
}

func runSync(cmd *cobra.Command, watchMode bool) error {
	cc := mustCLIContext(cmd.Context())
	ctx := cmd.Context()

	if watchMode {
		return runSyncWatch(ctx, cc)
	}

	report, err := runSyncOnce(ctx, cc, "manual")
	if err != nil {
		return err
	}

	if cc.JSON {
		if jsonErr := printSyncJSON(report); jsonErr != nil {
			return jsonErr
		}
	} else {
		printSyncText(cc, report)
	}

	if len(report.Errors) > 0 {
		return fmt.Errorf("sync completed with %d item errors", len(report.Errors))
	}

	return nil
}

// runSyncOnce opens the store and driver, runs one Engine.RunOnce cycle, and
// closes the store. Shared by the one-shot and --watch code paths.
func runSyncOnce(ctx context.Context, cc *CLIContext, reason string) (*sync.SyncReport, error) {
	st, err := openStore(ctx, cc.Logger)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	drv, err := openDriver(ctx, st, cc.Config.NetworkConfig, cc.Logger)
	if err != nil {
		return nil, err
	}

	cid, err := clientID(ctx, st)
	if err != nil {
		return nil, err
	}

	engine, err := newEngine(st, drv, cid, cc.Logger)
	if err != nil {
		return nil, err
	}

	cc.Logger.Info("sync: starting run", "reason", reason)

	report, err := engine.RunOnce(ctx)
	if err != nil {
		return report, fmt.Errorf("sync failed: %w", err)
	}

	return report, nil
}

// runSyncWatch runs sync continuously: once at startup, again on every
// local resource-directory change (debounced), and on every poll-interval
// tick. A PID file prevents more than one --watch daemon running at once.
func runSyncWatch(ctx context.Context, cc *CLIContext) error {
	pidPath := config.DefaultDataDir() + "/watch.pid"

	cleanup, err := writePIDFile(pidPath)
	if err != nil {
		return err
	}
	defer cleanup()

	pollInterval, err := time.ParseDuration(cc.Config.PollInterval)
	if err != nil {
		return fmt.Errorf("parsing poll_interval: %w", err)
	}

	ctx = shutdownContext(ctx, cc.Logger)

	cc.Statusf("Watching %s for changes (poll every %s). Press Ctrl-C to stop.\n",
		config.DefaultResourcesDir(), pollInterval)

	w := watch.New(config.DefaultResourcesDir(), pollInterval, cc.Logger)

	return w.Run(ctx, func(ctx context.Context, reason string) error {
		report, err := runSyncOnce(ctx, cc, reason)
		if err != nil {
			return err
		}

		if syncActivity(report) > 0 {
			cc.Statusf("Sync (%s): %d deleted remote, %d uploaded, %d pulled, %d deleted local, %d conflicts\n",
				reason, report.DeleteRemoteCount, report.UploadCount, report.PullCount, report.DeleteCount,
				report.ConflictNoteCount+report.OtherConflictCount)
		}

		return nil
	})
}

// syncActivity sums every counter that represents work actually done, so
// callers can tell a no-op run from one worth reporting.
func syncActivity(report *sync.SyncReport) int {
	return report.DeleteRemoteCount + report.UploadCount + report.PullCount + report.DeleteCount +
		report.ConflictNoteCount + report.OtherConflictCount
}

func printSyncText(cc *CLIContext, report *sync.SyncReport) {
	if syncActivity(report) == 0 && len(report.Errors) == 0 {
		cc.Statusf("Already in sync.\n")
		return
	}

	cc.Statusf("Sync complete (%s)\n", report.ElapsedTime.Round(time.Millisecond))

	if report.DeleteRemoteCount > 0 {
		cc.Statusf("  Deleted remote:      %d\n", report.DeleteRemoteCount)
	}

	if report.UploadCount > 0 {
		cc.Statusf("  Uploaded:            %d\n", report.UploadCount)
	}

	if report.PullCount > 0 {
		cc.Statusf("  Pulled:              %d\n", report.PullCount)
	}

	if report.DeleteCount > 0 {
		cc.Statusf("  Deleted local:       %d\n", report.DeleteCount)
	}

	if report.ConflictNoteCount > 0 {
		cc.Statusf("  Note conflicts:      %d\n", report.ConflictNoteCount)
	}

	if report.OtherConflictCount > 0 {
		cc.Statusf("  Other conflicts:     %d\n", report.OtherConflictCount)
	}

	if report.TombstonesPruned > 0 {
		cc.Statusf("  Tombstones pruned:   %d\n", report.TombstonesPruned)
	}

	if len(report.Errors) > 0 {
		cc.Statusf("  Errors:              %d\n", len(report.Errors))
	}
}

// syncJSONOutput is the JSON output schema for the sync command, mirroring
// SyncReport's field set (this core's SyncInfo).
type syncJSONOutput struct {
	DeleteRemoteCount  int             `json:"delete_remote_count"`
	UploadCount        int             `json:"upload_count"`
	PullCount          int             `json:"pull_count"`
	DeleteCount        int             `json:"delete_count"`
	ConflictNoteCount  int             `json:"conflict_note_count"`
	OtherConflictCount int             `json:"other_conflict_count"`
	TombstonesPruned   int64           `json:"tombstones_pruned"`
	ElapsedTimeMS      int64           `json:"elapsed_time_ms"`
	Errors             []syncJSONError `json:"errors"`
}

// syncJSONError represents a single item-level sync error in JSON output.
type syncJSONError struct {
	ItemID string `json:"item_id"`
	Phase  string `json:"phase"`
	Error  string `json:"error"`
}

func printSyncJSON(report *sync.SyncReport) error {
	errs := make([]syncJSONError, 0, len(report.Errors))
	for _, e := range report.Errors {
		errs = append(errs, syncJSONError{ItemID: e.ItemID, Phase: e.Phase, Error: e.Err.Error()})
	}

	out := syncJSONOutput{
		DeleteRemoteCount:  report.DeleteRemoteCount,
		UploadCount:        report.UploadCount,
		PullCount:          report.PullCount,
		DeleteCount:        report.DeleteCount,
		ConflictNoteCount:  report.ConflictNoteCount,
		OtherConflictCount: report.OtherConflictCount,
		TombstonesPruned:   report.TombstonesPruned,
		ElapsedTimeMS:      report.ElapsedTime.Milliseconds(),
		Errors:             errs,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
