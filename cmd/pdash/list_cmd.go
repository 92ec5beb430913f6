package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/pdash/internal/format"
	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/output"
	"github.com/raphi011/pdash/internal/query"
	"github.com/raphi011/pdash/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var (
		search     string
		progress   string
		categories []string
		favorite   bool
		archived   bool
		jsonOutput bool
		formatStr  string
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List projects",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the projects below the scan path with their tags.

Favorites come first, archived projects last, then the most recently
modified. Archived projects are hidden unless --archived is given or
hideArchived is turned off in the settings.

--format takes a Go template executed once per project. Fields are those of
the JSON output (.Name, .Path, .Description, .Tags.Progress, ...). Sprig
functions are available, plus "ago" for relative times and "csv" to join
lists.`,
		Example: `  pdash list                          # All visible projects
  pdash list -s bot                   # Name, title or description contains "bot"
  pdash list -c AI -c CLI             # Carrying any of the categories
  pdash list --favorite               # Favorites only
  pdash list --json                   # Output as JSON
  pdash list --format '{{.Name}}'     # One name per line`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if jsonOutput && formatStr != "" {
				return fmt.Errorf("--json and --format are mutually exclusive")
			}

			var tmpl *format.Template
			if formatStr != "" {
				var err error
				if tmpl, err = format.ParseTemplate(formatStr); err != nil {
					return err
				}
			}

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			av := e.tags.Available(ctx)
			if progress != "" && !av.Definitions.HasProgress(progress) {
				return fmt.Errorf("unknown progress %q (valid: %s)", progress, strings.Join(av.Definitions.Progress, ", "))
			}

			if refresh {
				if _, err := e.refresh(ctx); err != nil {
					return err
				}
			}

			f := query.DefaultFilter(e.settings.Load(ctx))
			f.Search = search
			f.Progress = progress
			f.Categories = categories
			f.Favorite = favorite
			if cmd.Flags().Changed("archived") {
				f.IncludeArchived = archived
			}

			entries, err := e.projects.List(ctx, f)
			if err != nil {
				return err
			}
			l.Debug("listing projects", "matched", len(entries))

			switch {
			case jsonOutput:
				return out.JSON(entries)
			case tmpl != nil:
				for _, entry := range entries {
					if err := tmpl.Execute(out.Writer(), entry); err != nil {
						return err
					}
				}
				return nil
			}

			if len(entries) == 0 {
				l.Println("No projects found")
				return nil
			}

			out.Print(static.RenderProjects(entries, av.Colors, time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by name, title or description (case-insensitive)")
	cmd.Flags().StringVarP(&progress, "progress", "p", "", "Filter by progress value")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "Filter by category (repeatable, matches any)")
	cmd.Flags().BoolVarP(&favorite, "favorite", "f", false, "Only favorites")
	cmd.Flags().BoolVarP(&archived, "archived", "a", false, "Include archived projects")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&formatStr, "format", "", "Go template for each project")
	cmd.Flags().BoolVarP(&refresh, "refresh", "R", false, "Rescan before listing")

	cmd.RegisterFlagCompletionFunc("progress", completeProgress)
	cmd.RegisterFlagCompletionFunc("category", completeCategories)

	return cmd
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scan",
		Short:   "Rescan the workspace",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Scan the workspace folder and report how many projects were found.

Folders listed in the excludedFolders setting and names matched by a
.pdashignore file at the scan root are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			start := time.Now()
			n, err := e.refresh(ctx)
			if err != nil {
				return err
			}

			root, _ := e.settings.Load(ctx).ResolvedScanPath()
			out.Printf("Found %d projects in %s (%s)\n", n, root, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	return cmd
}
