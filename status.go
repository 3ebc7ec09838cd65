package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/noteforge/joplin-sync-go/internal/config"
	"github.com/noteforge/joplin-sync-go/internal/model"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync target, last run, and pending local changes",
		Long: `Display whether a sync target is configured, when sync last ran, and
how many local changes are waiting to be synced.

Reads only the local store — does not contact the remote.`,
		RunE: runStatus,
	}
}

// statusOutput is the JSON-serializable status report.
type statusOutput struct {
	TargetConfigured bool   `json:"target_configured"`
	Host             string `json:"host,omitempty"`
	Email            string `json:"email,omitempty"`
	LastSyncTime     string `json:"last_sync_time,omitempty"`
	DirtyItems       int    `json:"dirty_items"`
	PendingDeletes   int    `json:"pending_deletes"`
	ConflictNotes    int    `json:"conflict_notes"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())
	ctx := cmd.Context()

	st, err := openStore(ctx, cc.Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	out := statusOutput{}

	target, err := config.LoadSyncTarget(ctx, st)
	switch {
	case err == nil && target.JoplinServer != nil:
		out.TargetConfigured = true
		out.Host = target.JoplinServer.Host
		out.Email = target.JoplinServer.Email
	case errors.Is(err, config.ErrSyncConfigNotExists):
		// Leave TargetConfigured false — reported below.
	case err != nil:
		return err
	}

	lastSync, err := st.GetSetting(ctx, model.SettingLastSyncTime)
	if err != nil {
		return err
	}

	var lastSyncTime time.Time

	if lastSync != "" {
		if ts, parseErr := model.ParseTimestamp(lastSync); parseErr == nil {
			lastSyncTime = ts.Time()
			out.LastSyncTime = model.RFC3339(ts)
		}
	}

	dirty, err := st.ListDirtySyncItems(ctx, 1)
	if err != nil {
		return err
	}

	out.DirtyItems = len(dirty)

	deleted, err := st.ListDeletedItems(ctx)
	if err != nil {
		return err
	}

	out.PendingDeletes = len(deleted)

	conflicts, err := st.ListConflictNotes(ctx)
	if err != nil {
		return err
	}

	out.ConflictNotes = len(conflicts)

	if cc.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(out)
	}

	printStatusText(&out, lastSyncTime)

	return nil
}

func printStatusText(out *statusOutput, lastSyncTime time.Time) {
	if !out.TargetConfigured {
		fmt.Println("No sync target configured. Run 'joplin-sync-go login' to get started.")
		return
	}

	fmt.Printf("Target:          %s (%s)\n", out.Host, out.Email)

	if !lastSyncTime.IsZero() {
		fmt.Printf("Last sync:       %s\n", formatTime(lastSyncTime))
	} else {
		fmt.Println("Last sync:       never")
	}

	fmt.Printf("Dirty items:     %d\n", out.DirtyItems)
	fmt.Printf("Pending deletes: %d\n", out.PendingDeletes)
	fmt.Printf("Conflict notes:  %d\n", out.ConflictNotes)
}
