package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/output"
	"github.com/raphi011/pdash/internal/tags"
	"github.com/raphi011/pdash/internal/ui/styles"
	"github.com/raphi011/pdash/internal/ui/tageditor"
)

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Short:   "Show or change the tags of a project",
		GroupID: GroupTags,
		Long: `Show or change the tags of one project: custom title, progress,
categories, favorite, archived and notes.`,
		Example: `  pdash tags show notes-bot
  pdash tags set notes-bot --progress 진행중 --add-category AI
  pdash tags edit notes-bot`,
	}

	cmd.AddCommand(newTagsShowCmd())
	cmd.AddCommand(newTagsSetCmd())
	cmd.AddCommand(newTagsEditCmd())

	return cmd
}

func newTagsShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:               "show <project>",
		Short:             "Show the tags of a project",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			a := e.tags.GetProjectTags(ctx, args[0])
			if jsonOutput {
				return out.JSON(a)
			}

			colors := e.tags.Available(ctx).Colors
			cats := make([]string, 0, len(a.Categories))
			for _, c := range a.Categories {
				cats = append(cats, styles.Chip(colors.Category(c), c))
			}

			out.Printf("Title:      %s\n", a.Title(args[0]))
			out.Printf("Progress:   %s\n", styles.Chip(colors.ProgressColor(a.Progress), a.Progress))
			out.Printf("Categories: %s\n", strings.Join(cats, " "))
			out.Printf("Favorite:   %t\n", a.Favorite)
			out.Printf("Archived:   %t\n", a.Archived)
			if a.Notes != "" {
				out.Printf("Notes:\n  %s\n", strings.ReplaceAll(a.Notes, "\n", "\n  "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// tagChanges holds the flags of "tags set"; only changed flags apply.
type tagChanges struct {
	title            string
	progress         string
	categories       []string
	addCategories    []string
	removeCategories []string
	favorite         bool
	archived         bool
	notes            string
}

// apply merges the flags that were set on cmd into a.
func (c tagChanges) apply(cmd *cobra.Command, a tags.Assignment) tags.Assignment {
	changed := cmd.Flags().Changed

	if changed("title") {
		a.CustomTitle = &c.title
	}
	if changed("progress") {
		a.Progress = c.progress
	}
	if changed("category") {
		a.Categories = slices.Clone(c.categories)
	}
	for _, cat := range c.addCategories {
		if !a.HasCategory(cat) {
			a.Categories = append(a.Categories, cat)
		}
	}
	if len(c.removeCategories) > 0 {
		a.Categories = slices.DeleteFunc(slices.Clone(a.Categories), func(cat string) bool {
			return slices.Contains(c.removeCategories, cat)
		})
	}
	if changed("favorite") {
		a.Favorite = c.favorite
	}
	if changed("archived") {
		a.Archived = c.archived
	}
	if changed("notes") {
		a.Notes = c.notes
	}
	return a
}

func newTagsSetCmd() *cobra.Command {
	var c tagChanges

	cmd := &cobra.Command{
		Use:   "set <project>",
		Short: "Change the tags of a project",
		Args:  cobra.ExactArgs(1),
		Long: `Change the tags of a project. Only the given flags are changed.

An empty --title clears the custom title. Categories that are not registered
are stored anyway; 'pdash doctor' reports them.`,
		Example: `  pdash tags set notes-bot --title "Notes Bot"
  pdash tags set notes-bot -p 완료 --archived
  pdash tags set notes-bot --add-category AI --remove-category 봇
  pdash tags set notes-bot --favorite=false`,
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			name := args[0]

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			if _, err := e.find(ctx, name); err != nil {
				return err
			}

			defs := e.tags.Store().LoadDefinitions(ctx)
			if cmd.Flags().Changed("progress") && !defs.HasProgress(c.progress) {
				return fmt.Errorf("unknown progress %q (valid: %s)", c.progress, strings.Join(defs.Progress, ", "))
			}

			a := c.apply(cmd, e.tags.GetProjectTags(ctx, name))
			for _, cat := range a.Categories {
				if !defs.HasCategory(cat) {
					l.Printf("Warning: category %q is not registered (add it with 'pdash tag add')\n", cat)
				}
			}

			if _, err := e.tags.SetProjectTags(ctx, name, a); err != nil {
				return fmt.Errorf("save tags: %w", err)
			}

			l.Printf("Updated tags of %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&c.title, "title", "", "Custom title (empty clears it)")
	cmd.Flags().StringVarP(&c.progress, "progress", "p", "", "Progress value")
	cmd.Flags().StringSliceVarP(&c.categories, "category", "c", nil, "Replace the categories")
	cmd.Flags().StringSliceVar(&c.addCategories, "add-category", nil, "Add a category")
	cmd.Flags().StringSliceVar(&c.removeCategories, "remove-category", nil, "Remove a category")
	cmd.Flags().BoolVar(&c.favorite, "favorite", false, "Mark as favorite")
	cmd.Flags().BoolVar(&c.archived, "archived", false, "Mark as archived")
	cmd.Flags().StringVar(&c.notes, "notes", "", "Free-form notes")

	cmd.RegisterFlagCompletionFunc("progress", completeProgress)
	cmd.RegisterFlagCompletionFunc("category", completeCategories)
	cmd.RegisterFlagCompletionFunc("add-category", completeCategories)
	cmd.RegisterFlagCompletionFunc("remove-category", completeCategories)

	return cmd
}

func newTagsEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "edit <project>",
		Short:             "Edit the tags of a project in a form",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			name := args[0]

			if !isInteractive() {
				return fmt.Errorf("%w, use 'pdash tags set' instead", errNotInteractive)
			}

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}
			if _, err := e.find(ctx, name); err != nil {
				return err
			}

			current := e.tags.GetProjectTags(ctx, name)
			defs := e.tags.Store().LoadDefinitions(ctx)

			edited, err := tageditor.Edit(ctx, name, current, defs, e.cfg.Theme.Name)
			if errors.Is(err, huh.ErrUserAborted) {
				l.Println("Cancelled")
				return nil
			}
			if err != nil {
				return err
			}

			if _, err := e.tags.SetProjectTags(ctx, name, edited); err != nil {
				return fmt.Errorf("save tags: %w", err)
			}

			l.Printf("Updated tags of %s\n", name)
			return nil
		},
	}

	return cmd
}
