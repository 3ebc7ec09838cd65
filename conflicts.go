package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// conflictIDPrefixLen is the number of characters to show for note IDs in
// table output. 8 chars is sufficient for uniqueness in typical use.
const conflictIDPrefixLen = 8

func newConflictsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List conflict-copy notes created during sync",
		Long: `Display every note the Synchronizer's conflict policy has created.

A conflict copy is a fresh note holding a client's pre-sync content,
created when the remote version of a note changed and the two versions
actually differ (see the original note via its conflict_original_id).
This core never merges conflicting edits — resolve them by hand.`,
	}

	cmd.AddCommand(newConflictsListCmd())

	return cmd
}

func newConflictsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conflict-copy notes",
		RunE:  runConflictsList,
	}
}

// conflictJSON is the JSON-serializable representation of a conflict note.
type conflictJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	OriginalID  string `json:"original_id"`
	UpdatedTime string `json:"updated_time"`
}

func runConflictsList(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())
	ctx := cmd.Context()

	st, err := openStore(ctx, cc.Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	notes, err := st.ListConflictNotes(ctx)
	if err != nil {
		return err
	}

	if len(notes) == 0 {
		if !cc.JSON {
			fmt.Println("No conflict notes.")
			return nil
		}
	}

	if cc.JSON {
		return printConflictsJSON(notes)
	}

	printConflictsTable(notes)

	return nil
}

func printConflictsJSON(notes []*model.Note) error {
	items := make([]conflictJSON, len(notes))
	for i, n := range notes {
		items[i] = conflictJSON{
			ID:          n.ID.String(),
			Title:       n.Title,
			OriginalID:  n.ConflictOriginalID.String(),
			UpdatedTime: model.RFC3339(n.UpdatedTime),
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

func printConflictsTable(notes []*model.Note) {
	headers := []string{"ID", "TITLE", "ORIGINAL", "UPDATED"}
	rows := make([][]string, len(notes))

	for i, n := range notes {
		rows[i] = []string{
			truncateID(n.ID.String()),
			n.Title,
			truncateID(n.ConflictOriginalID.String()),
			formatTime(n.UpdatedTime.Time()),
		}
	}

	printTable(os.Stdout, headers, rows)
}

func truncateID(id string) string {
	if len(id) > conflictIDPrefixLen {
		return id[:conflictIDPrefixLen]
	}

	return id
}
