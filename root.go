package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/noteforge/joplin-sync-go/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// Global persistent flags, bound in newRootCmd.
var (
	flagConfigPath string
	flagJSON       bool
	flagVerbose    bool
	flagDebug      bool
	flagQuiet      bool
)

// skipConfigAnnotation marks commands that load configuration themselves
// (or need none at all) and should skip PersistentPreRunE's resolution.
const skipConfigAnnotation = "skipConfig"

// CLIContext bundles the resolved configuration and logger every command
// needs. Built once in PersistentPreRunE and threaded through cmd.Context().
type CLIContext struct {
	Config *config.Config
	Logger *slog.Logger

	JSON  bool
	Quiet bool
}

type cliContextKey struct{}

// cliContextFrom extracts the CLIContext from ctx, or nil if none was set
// (commands annotated with skipConfigAnnotation).
func cliContextFrom(ctx context.Context) *CLIContext {
	cc, _ := ctx.Value(cliContextKey{}).(*CLIContext)
	return cc
}

// mustCLIContext extracts the CLIContext or panics — a programmer error,
// since every RunE without skipConfigAnnotation is guaranteed one by
// PersistentPreRunE.
func mustCLIContext(ctx context.Context) *CLIContext {
	cc := cliContextFrom(ctx)
	if cc == nil {
		panic("BUG: CLIContext not found in context — command is missing skipConfigAnnotation or its own config loading")
	}

	return cc
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "joplin-sync-go",
		Short:   "Joplin-compatible note sync client",
		Long:    "A local-first note synchronization core compatible with Joplin Server.",
		Version: version,
		// Cobra's own error/usage printing is silenced — main() handles it.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipConfigAnnotation] == "true" {
				return nil
			}

			return loadConfig(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "config file path")
	cmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "show detailed output")
	cmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress informational output")

	cmd.MarkFlagsMutuallyExclusive("verbose", "debug", "quiet")

	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newConflictsCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// loadConfig resolves the config file and stores a CLIContext on the
// command's context for RunE handlers to pick up.
func loadConfig(cmd *cobra.Command) error {
	logger := buildLogger(nil)

	path := flagConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := config.LoadOrDefault(path, logger)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	finalLogger := buildLogger(cfg)

	cc := &CLIContext{
		Config: cfg,
		Logger: finalLogger,
		JSON:   flagJSON,
		Quiet:  flagQuiet,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cc))

	return nil
}

// buildLogger builds a logger whose level is set by the config file's
// log_level, then overridden by CLI flags (highest priority, mutually
// exclusive). Pass nil for the pre-config bootstrap logger.
func buildLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn

	if cfg != nil {
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "error":
			level = slog.LevelError
		}
	}

	if flagVerbose {
		level = slog.LevelInfo
	}

	if flagDebug {
		level = slog.LevelDebug
	}

	if flagQuiet {
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// exitOnError prints a user-friendly error message to stderr and exits.
func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
