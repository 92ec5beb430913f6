package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/pdash/internal/doctor"
)

func newDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose and repair tag data",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose the persisted tag data and settings.

Checks:
- The documents in the data directory are valid JSON
- The scan path exists and is a directory
- Every registered category has a color
- Colors only exist for registered categories
- Assignments use known progress values and registered categories
- Assignments belong to projects found by the scan

Only missing colors can be repaired automatically.`,
		Example: `  pdash doctor          # Check for issues
  pdash doctor --fix    # Assign colors to uncolored categories`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			in := doctor.Gather(ctx, e.tags, e.projects, e.settings.Load(ctx))
			report, err := doctor.Run(ctx, e.tags, in, fix)
			if err != nil {
				return err
			}

			remaining := len(report.Issues)
			if fix {
				remaining -= len(report.Fixable())
			}
			if remaining > 0 {
				return fmt.Errorf("%d issue(s) found", remaining)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair fixable issues")

	return cmd
}
