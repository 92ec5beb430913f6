package config

import (
	"fmt"
	"net"
	"slices"
	"strings"
)

// Valid enum values for configuration fields.
var (
	ValidThemeNames = []string{"none", "default", "dracula", "nord", "gruvbox", "catppuccin"}
	ValidThemeModes = []string{"auto", "light", "dark"}
)

func isValidThemeName(name string) bool {
	return slices.Contains(ValidThemeNames, name)
}

// validate checks a merged config before ~ expansion.
func validate(cfg *Config) error {
	if err := ValidatePath(cfg.DataDir, "data_dir"); err != nil {
		return err
	}
	if err := ValidatePath(cfg.Scan.DefaultPath, "scan.default_path"); err != nil {
		return err
	}
	if cfg.Scan.Concurrency < 1 {
		return fmt.Errorf("invalid scan.concurrency %d: must be at least 1", cfg.Scan.Concurrency)
	}
	if _, _, err := net.SplitHostPort(cfg.Serve.Addr); err != nil {
		return fmt.Errorf("invalid serve.addr %q: %w", cfg.Serve.Addr, err)
	}
	if cfg.Theme.Name != "" && !isValidThemeName(cfg.Theme.Name) {
		return fmt.Errorf("invalid theme.name %q: must be %s", cfg.Theme.Name, formatOptions(ValidThemeNames))
	}
	return validateEnum(cfg.Theme.Mode, "theme.mode", ValidThemeModes)
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
