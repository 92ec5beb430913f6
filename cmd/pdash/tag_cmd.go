package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/output"
	"github.com/raphi011/pdash/internal/tags"
	"github.com/raphi011/pdash/internal/ui/prompt"
	"github.com/raphi011/pdash/internal/ui/static"
	"github.com/raphi011/pdash/internal/ui/styles"
)

func newTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tag",
		Short:   "Manage the category registry",
		GroupID: GroupTags,
		Long: `Manage the registered category tags and their colors.

Progress values are fixed; categories can be added and deleted. A category
cannot be deleted while a project still carries it.`,
		Example: `  pdash tag list
  pdash tag add 게임
  pdash tag color 게임 "bg-red-100 text-red-800"
  pdash tag delete 게임`,
	}

	cmd.AddCommand(newTagListCmd())
	cmd.AddCommand(newTagAddCmd())
	cmd.AddCommand(newTagDeleteCmd())
	cmd.AddCommand(newTagColorCmd())

	return cmd
}

func newTagListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List progress values and categories",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			av := e.tags.Available(ctx)
			if jsonOutput {
				return out.JSON(av)
			}

			assignments := e.tags.Store().LoadAssignments(ctx)

			rows := make([][]string, 0, len(av.Definitions.Progress)+len(av.Definitions.Categories))
			for _, p := range av.Definitions.Progress {
				rows = append(rows, []string{
					styles.Chip(av.Colors.ProgressColor(p), p),
					"progress",
					strconv.Itoa(countProgress(assignments, p)),
					av.Colors.ProgressColor(p),
				})
			}
			for _, c := range av.Definitions.Categories {
				rows = append(rows, []string{
					styles.Chip(av.Colors.Category(c), c),
					"category",
					strconv.Itoa(len(assignments.Using(c))),
					av.Colors.Category(c),
				})
			}

			out.Print(static.RenderTable([]string{"TAG", "KIND", "PROJECTS", "COLOR"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// countProgress counts stored assignments with progress value p.
func countProgress(as tags.Assignments, p string) int {
	n := 0
	for name := range as {
		if as.Get(name).Progress == p {
			n++
		}
	}
	return n
}

// unregistered rejects names that are already categories so the prompt can
// ask again instead of failing after it closes.
func unregistered(defs tags.Definitions) prompt.Validator {
	return func(name string) error {
		if defs.HasCategory(name) {
			return &tags.DuplicateTagError{Tag: name}
		}
		return nil
	}
}

func newTagAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [category]",
		Short: "Register a category",
		Long: `Register a category. It gets a random color from the palette.
Without an argument the name is prompted for.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			var tag string
			if len(args) == 1 {
				tag = strings.TrimSpace(args[0])
			} else {
				if !isInteractive() {
					return fmt.Errorf("%w, pass a category name", errNotInteractive)
				}
				defs := e.tags.Available(ctx).Definitions
				res, err := prompt.TextInput("New category:", "e.g. 게임", unregistered(defs))
				if err != nil {
					return err
				}
				if res.Cancelled {
					l.Println("Cancelled")
					return nil
				}
				tag = res.Value
			}

			av, err := e.tags.AddCategory(ctx, tag)
			if err != nil {
				return err
			}

			l.Printf("Added %s\n", styles.Chip(av.Colors.Category(tag), tag))
			return nil
		},
	}

	return cmd
}

func newTagDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:               "delete <category>",
		Short:             "Delete a category",
		Aliases:           []string{"rm"},
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCategories,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			tag := args[0]

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			if !yes && isInteractive() {
				res, err := prompt.Confirm(fmt.Sprintf("Delete category %q?", tag))
				if err != nil {
					return err
				}
				if !res.Confirmed {
					l.Println("Cancelled")
					return nil
				}
			}

			_, err = e.tags.DeleteCategory(ctx, tag)
			var inUse *tags.TagInUseError
			if errors.As(err, &inUse) {
				l.Printf("%q is still used by:\n", inUse.Tag)
				for _, p := range inUse.Projects {
					l.Printf("  %s\n", p)
				}
				return fmt.Errorf("remove it from these projects first (pdash tags set <project> --remove-category %s)", inUse.Tag)
			}
			if err != nil {
				return err
			}

			l.Printf("Deleted %s\n", tag)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func newTagColorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "color <category> <token>",
		Short: "Set the color of a category",
		Long: `Set the color of a category. The token uses the dashboard's class
names, for example "bg-purple-100 text-purple-800".`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return completeCategories(cmd, args, toComplete)
			case 1:
				return filterPrefix(tags.Palette, toComplete), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			tag, token := args[0], args[1]

			if fg, bg := styles.TokenColors(token); fg == nil && bg == nil {
				l.Printf("Warning: %q has no color the terminal can show\n", token)
			}

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			if _, err := e.tags.UpdateColor(ctx, tag, token); err != nil {
				return err
			}

			l.Printf("Colored %s\n", styles.Chip(token, tag))
			return nil
		},
	}

	return cmd
}
