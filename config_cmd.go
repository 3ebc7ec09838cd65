package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noteforge/joplin-sync-go/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration after all overrides",
		RunE:  runConfigShow,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cc := mustCLIContext(cmd.Context())

	if cc.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(cc.Config)
	}

	fmt.Printf("[sync]\n")
	fmt.Printf("  poll_interval     = %s\n", cc.Config.PollInterval)
	fmt.Printf("  conflict_history  = %d\n", cc.Config.ConflictHistory)
	fmt.Printf("  tombstone_max_age = %s\n", cc.Config.TombstoneMaxAge)
	fmt.Printf("  lock_timeout      = %s\n", cc.Config.LockTimeout)
	fmt.Printf("[logging]\n")
	fmt.Printf("  log_level  = %s\n", cc.Config.LogLevel)
	fmt.Printf("  log_file   = %s\n", cc.Config.LogFile)
	fmt.Printf("  log_format = %s\n", cc.Config.LogFormat)
	fmt.Printf("[network]\n")
	fmt.Printf("  connect_timeout = %s\n", cc.Config.ConnectTimeout)
	fmt.Printf("  data_timeout    = %s\n", cc.Config.DataTimeout)
	fmt.Printf("  user_agent      = %s\n", cc.Config.UserAgent)

	return nil
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file with every option commented out",
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE:        runConfigInit,
	}

	return cmd
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path := flagConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if path == "" {
		return fmt.Errorf("cannot determine default config path on this platform")
	}

	if err := config.CreateDefault(path); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	statusf(flagQuiet, "Wrote default config to %s\n", path)

	return nil
}
