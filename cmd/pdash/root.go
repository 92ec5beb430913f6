package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/pdash/internal/config"
	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/output"
	"github.com/raphi011/pdash/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupTags    = "tags"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// newRootCmd builds the command tree. The context passed to Execute must
// carry the config and the stdout printer.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pdash",
		Short: "Personal project dashboard",
		Long: `pdash scans a workspace folder, describes every project it finds and
lets you tag them with progress, categories, favorites and notes.

The same data is served as a JSON API for the browser dashboard with
'pdash serve'.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			quiet, _ := cmd.Flags().GetBool("quiet")

			// Diagnostics go to stderr; attached here so the parsed flags apply
			logger := log.New(cmd.ErrOrStderr(), verbose, quiet)
			cmd.SetContext(log.WithLogger(cmd.Context(), logger))
			return nil
		},
		// Run is not set - shows help when no subcommand provided
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output and external commands")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupTags, Title: "Tag Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newOpenCmd())
	rootCmd.AddCommand(newServeCmd())

	// Tag commands
	rootCmd.AddCommand(newTagsCmd())
	rootCmd.AddCommand(newTagCmd())

	// Utility commands
	rootCmd.AddCommand(newReadmeCmd())
	rootCmd.AddCommand(newPathCmd())

	// Config commands
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	styles.Init(cfg.Theme)

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = config.WithConfig(ctx, &cfg)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, output.Styled(os.Stdout, os.Environ()))

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'pdash -h' for help")
		os.Exit(1)
	}
}
