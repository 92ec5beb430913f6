package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/output"
)

func newPathCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:     "path <project>",
		Short:   "Print the path of a project",
		GroupID: GroupUtility,
		Args:    cobra.ExactArgs(1),
		Long: `Print the absolute path of a project.

Use with cd to jump to a project.`,
		Example: `  cd $(pdash path notes-bot)
  pdash path notes-bot --copy   # copy the path to the clipboard`,
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			entry, err := e.find(ctx, args[0])
			if err != nil {
				return err
			}

			// Copy to clipboard if requested
			if copyToClipboard {
				if err := clipboard.WriteAll(entry.Path); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				} else {
					l.Println("Copied to clipboard")
				}
			}

			out.Println(entry.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy path to clipboard")

	return cmd
}
