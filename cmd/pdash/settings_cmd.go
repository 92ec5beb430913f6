package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/pdash/internal/log"
	"github.com/raphi011/pdash/internal/output"
	"github.com/raphi011/pdash/internal/settings"
)

// settingSetters parse a value into one settings field.
var settingSetters = map[string]func(*settings.Settings, string) error{
	"scanPath": func(s *settings.Settings, v string) error {
		s.ScanPath = v
		return nil
	},
	"terminalApp": func(s *settings.Settings, v string) error {
		s.TerminalApp = v
		return nil
	},
	"editorCommand": func(s *settings.Settings, v string) error {
		s.EditorCommand = v
		return nil
	},
	"excludedFolders": func(s *settings.Settings, v string) error {
		s.ExcludedFolders = splitList(v)
		return nil
	},
	"hideArchived": func(s *settings.Settings, v string) (err error) {
		s.HideArchived, err = strconv.ParseBool(v)
		return err
	},
	"hideHiddenProjects": func(s *settings.Settings, v string) (err error) {
		s.HideHiddenProjects, err = strconv.ParseBool(v)
		return err
	},
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// splitList splits a comma separated value, dropping blanks.
func splitList(v string) []string {
	out := []string{}
	for part := range strings.SplitSeq(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "settings",
		Short:   "Show or change the dashboard settings",
		GroupID: GroupConfig,
		Long: `Show or change the dashboard settings stored in the data directory.

These are the settings the browser dashboard edits: where to scan, what to
skip, which apps open projects and what is hidden by default.`,
		Example: `  pdash settings show
  pdash settings set scanPath ~/code
  pdash settings set excludedFolders node_modules,dist,.cache
  pdash settings set hideArchived false`,
	}

	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsSetCmd())

	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}
			return output.FromContext(ctx).JSON(e.settings.Load(ctx))
		},
	}

	return cmd
}

func newSettingsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: fmt.Sprintf(`Change one setting.

Keys: %s

excludedFolders takes a comma separated list.`, strings.Join(settingKeys(), ", ")),
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return filterPrefix(settingKeys(), toComplete), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			key, value := args[0], args[1]

			set, ok := settingSetters[key]
			if !ok {
				return fmt.Errorf("unknown setting %q (valid: %s)", key, strings.Join(settingKeys(), ", "))
			}

			e, err := loadEnv(ctx)
			if err != nil {
				return err
			}

			st := e.settings.Load(ctx)
			if err := set(&st, value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			if err := e.settings.Save(st); err != nil {
				return err
			}

			l.Printf("Set %s\n", key)
			return nil
		},
	}

	return cmd
}
