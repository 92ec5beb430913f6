package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/pdash/internal/history"
	"github.com/raphi011/pdash/internal/launcher"
	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/query"
	"github.com/raphi011/pdash/internal/ui/prompt"
)

// defaultApp is used when --app is not given and no picker is shown.
const defaultApp = launcher.AppVSCode

func newOpenCmd() *cobra.Command {
	var (
		app         string
		interactive bool
		last        bool
	)

	cmd := &cobra.Command{
		Use:     "open [project]",
		Short:   "Open a project in an application",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Open a project in an application.

Applications:
  vscode    the configured editor command (default)
  terminal  the configured terminal app at the project folder
  claude    the terminal app, for starting an agent session
  finder    the platform file manager
  github    the project's forge page in the browser

Without a project, or with -i, pick the project and app interactively.
Recently opened projects are listed first. --last reopens the most recently
opened project with the application it was opened in.`,
		Example: `  pdash open notes-bot             # Open in the editor
  pdash open notes-bot -a github   # Open the repository page
  pdash open -i                    # Pick project and app
  pdash open --last                # Reopen the previous project`,
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if app != "" && !slices.Contains(launcher.Apps, app) {
				return fmt.Errorf("unknown application %q (valid: %s)", app, strings.Join(launcher.Apps, ", "))
			}

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			if last && (interactive || len(args) > 0) {
				return fmt.Errorf("--last cannot be combined with a project or -i")
			}

			pick := !last && (interactive || len(args) == 0)
			if pick && !isInteractive() {
				return fmt.Errorf("%w, pass a project name", errNotInteractive)
			}

			h, err := history.Load(e.history)
			if err != nil {
				l.Debug("history unreadable", "error", err)
				h = &history.History{}
			}

			var entry query.Entry
			switch {
			case last:
				recent, ok := h.MostRecent()
				if !ok {
					return fmt.Errorf("no project has been opened yet")
				}
				if app == "" {
					app = recent.App
				}
				entry, err = e.find(ctx, recent.Name)
			case len(args) == 1:
				entry, err = e.find(ctx, args[0])
			default:
				entry, err = pickProject(ctx, e, h)
			}
			if err != nil || entry.Name == "" {
				return err
			}

			if app == "" {
				app = defaultApp
				if pick {
					if app, err = pickApp(); err != nil || app == "" {
						return err
					}
				}
			}

			res := launcher.New(e.settings.Load(ctx)).Open(ctx, launcher.ForProject(entry.Project, app))
			if !res.Success {
				return fmt.Errorf("%s", res.Message)
			}

			if err := history.RecordAccess(e.history, entry.Name, app); err != nil {
				l.Debug("failed to record history", "error", err)
			}

			l.Printf("Opened %s in %s\n", entry.Title(), app)
			return nil
		},
	}

	cmd.Flags().StringVarP(&app, "app", "a", "", "Application to open the project in")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick project and app interactively")
	cmd.Flags().BoolVarP(&last, "last", "l", false, "Reopen the most recently opened project")

	cmd.RegisterFlagCompletionFunc("app", completeApps)

	return cmd
}

// pickProject shows the project picker, recently opened projects first.
// A cancelled pick returns a zero entry and no error.
func pickProject(ctx context.Context, e *env, h *history.History) (query.Entry, error) {
	entries, err := e.projects.List(ctx, query.DefaultFilter(e.settings.Load(ctx)))
	if err != nil {
		return query.Entry{}, err
	}
	if len(entries) == 0 {
		return query.Entry{}, fmt.Errorf("no projects found")
	}
	byRecency(entries, h)

	options := make([]prompt.Option, 0, len(entries))
	for _, entry := range entries {
		options = append(options, prompt.Option{
			Key:         entry.Name,
			Title:       entry.Title(),
			Description: entry.Description,
		})
	}

	res, err := prompt.Select("Open project", options)
	if err != nil || res.Cancelled {
		return query.Entry{}, err
	}
	return entries[res.Index], nil
}

// byRecency moves opened projects to the front, most recent first. The
// remaining entries keep their order.
func byRecency(entries []query.Entry, h *history.History) {
	slices.SortStableFunc(entries, func(a, b query.Entry) int {
		return h.LastAccess(b.Name).Compare(h.LastAccess(a.Name))
	})
}

// pickApp shows the application picker. A cancelled pick returns "".
func pickApp() (string, error) {
	options := make([]prompt.Option, 0, len(launcher.Apps))
	for _, a := range launcher.Apps {
		options = append(options, prompt.Option{Key: a, Title: a})
	}

	res, err := prompt.Select("Open with", options)
	if err != nil || res.Cancelled {
		return "", err
	}
	return res.Value, nil
}
