package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/pdash/internal/launcher"
	"github.com/raphi011/pdash/internal/tags"
)

// completeProjects provides project name completion for the first argument.
func completeProjects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := cmd.Context()
	e, err := loadEnv(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	names, err := e.projects.Names(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeCategories provides registered category completion.
func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	e, err := loadEnv(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	defs := e.tags.Store().LoadDefinitions(ctx)
	return filterPrefix(defs.Categories, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeProgress provides progress value completion.
func completeProgress(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(tags.ProgressValues(), toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeApps provides launcher application completion.
func completeApps(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(launcher.Apps, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}
