package main

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raphi011/pdash/internal/config"
	"github.com/raphi011/pdash/internal/output"
)

// maxReadmeWidth caps the wrap width on wide terminals.
const maxReadmeWidth = 100

func newReadmeCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:     "readme <project>",
		Short:   "Show a project's README",
		GroupID: GroupUtility,
		Args:    cobra.ExactArgs(1),
		Long: `Show a project's README rendered for the terminal.

The raw markdown is printed with --raw or when stdout is not a terminal.`,
		Example: `  pdash readme notes-bot
  pdash readme notes-bot --raw | less`,
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			content, err := e.projects.Readme(ctx, args[0])
			if err != nil {
				return err
			}

			if raw || !isatty.IsTerminal(os.Stdout.Fd()) {
				out.Print(content)
				return nil
			}

			rendered, err := renderMarkdown(content, e.cfg.Theme, terminalWidth())
			if err != nil {
				// fall back to the source rather than failing
				out.Print(content)
				return nil
			}
			out.Print(rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown source")

	return cmd
}

// renderMarkdown renders content with a glamour style matching the theme.
func renderMarkdown(content string, theme config.ThemeConfig, width int) (string, error) {
	style := glamour.WithAutoStyle()
	switch {
	case theme.Name == "none":
		style = glamour.WithStandardStyle("notty")
	case theme.Name == "dracula":
		style = glamour.WithStandardStyle("dracula")
	case theme.Mode == "light":
		style = glamour.WithStandardStyle("light")
	case theme.Mode == "dark":
		style = glamour.WithStandardStyle("dark")
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

// terminalWidth returns the stdout width, capped, or 80 when unknown.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return min(w, maxReadmeWidth)
}
