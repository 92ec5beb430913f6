package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults for values not present in the config file.
const (
	DefaultDataDir     = "~/.pdash"
	DefaultScanPath    = "~/code_workshop"
	DefaultConcurrency = 8
	DefaultServeAddr   = "127.0.0.1:3001"
)

// Environment variables that override config file values.
const (
	EnvDataDir  = "PDASH_DATA_DIR"
	EnvScanPath = "PDASH_SCAN_PATH"
	EnvTheme    = "PDASH_THEME"
)

// ScanConfig holds project scanning configuration
type ScanConfig struct {
	DefaultPath string `toml:"default_path"` // seeds settings.scanPath on first run
	Concurrency int    `toml:"concurrency"`
}

// ServeConfig holds HTTP server configuration
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// ThemeConfig holds UI theme configuration
type ThemeConfig struct {
	Name     string `toml:"name"` // preset family: default, dracula, nord, gruvbox, catppuccin, none
	Mode     string `toml:"mode"` // auto, light, dark
	Primary  string `toml:"primary"`
	Accent   string `toml:"accent"`
	Success  string `toml:"success"`
	Error    string `toml:"error"`
	Muted    string `toml:"muted"`
	Normal   string `toml:"normal"`
	Info     string `toml:"info"`
	Warning  string `toml:"warning"`
	Nerdfont bool   `toml:"nerdfont"`
}

// Config holds the pdash configuration
type Config struct {
	DataDir string      `toml:"data_dir"`
	Scan    ScanConfig  `toml:"scan"`
	Serve   ServeConfig `toml:"serve"`
	Theme   ThemeConfig `toml:"theme"`
}

// Default returns the default configuration with ~ already expanded.
func Default() Config {
	cfg := Config{
		DataDir: DefaultDataDir,
		Scan: ScanConfig{
			DefaultPath: DefaultScanPath,
			Concurrency: DefaultConcurrency,
		},
		Serve: ServeConfig{Addr: DefaultServeAddr},
	}
	if dir, err := expandPath(cfg.DataDir); err == nil {
		cfg.DataDir = dir
	}
	if p, err := expandPath(cfg.Scan.DefaultPath); err == nil {
		cfg.Scan.DefaultPath = p
	}
	return cfg
}

type configKey struct{}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored in ctx, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(configKey{}).(*Config)
	return cfg
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the config file
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pdash", "config.toml"), nil
}

// Load reads config from ~/.config/pdash/config.toml and applies environment
// overrides. Returns Default() if the file doesn't exist.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		return cfg, applyEnvOverrides(&cfg)
	}
	return LoadFile(path)
}

// LoadFile reads config from path. A missing file yields the defaults; an
// unreadable or invalid file returns Default() alongside the error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		var raw Config
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return Default(), fmt.Errorf("failed to parse config file: %w", err)
		}
		merge(&cfg, raw)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Default(), err
	}
	if err := validate(&cfg); err != nil {
		return Default(), err
	}
	if err := expandPaths(&cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// merge copies the non-zero values of raw over cfg.
func merge(cfg *Config, raw Config) {
	if raw.DataDir != "" {
		cfg.DataDir = raw.DataDir
	}
	if raw.Scan.DefaultPath != "" {
		cfg.Scan.DefaultPath = raw.Scan.DefaultPath
	}
	if raw.Scan.Concurrency != 0 {
		cfg.Scan.Concurrency = raw.Scan.Concurrency
	}
	if raw.Serve.Addr != "" {
		cfg.Serve.Addr = raw.Serve.Addr
	}
	cfg.Theme = raw.Theme
}

// applyEnvOverrides applies PDASH_* environment variables on top of cfg.
// Empty variables are ignored.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvDataDir); v != "" {
		if err := ValidatePath(v, EnvDataDir); err != nil {
			return err
		}
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvScanPath); v != "" {
		if err := ValidatePath(v, EnvScanPath); err != nil {
			return err
		}
		cfg.Scan.DefaultPath = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme.Name = v
	}
	return nil
}

func expandPaths(cfg *Config) error {
	dir, err := expandPath(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("expand data_dir: %w", err)
	}
	cfg.DataDir = dir

	scan, err := expandPath(cfg.Scan.DefaultPath)
	if err != nil {
		return fmt.Errorf("expand scan.default_path: %w", err)
	}
	cfg.Scan.DefaultPath = scan
	return nil
}

// Show renders cfg as TOML.
func Show(cfg Config) (string, error) {
	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return buf.String(), nil
}

const defaultConfig = `# pdash configuration

# Directory holding project-tags.json, tag-definitions.json, tag-colors.json
# and settings.json. Must be absolute or start with ~.
# Overridden by PDASH_DATA_DIR.
# data_dir = "~/.pdash"

[scan]
# Directory whose immediate subdirectories are projects. Only used to seed
# settings.json on first run; afterwards "pdash settings set scanPath" wins.
# Overridden by PDASH_SCAN_PATH.
# default_path = "~/code_workshop"

# Number of project directories inspected in parallel
# concurrency = 8

[serve]
# Listen address for "pdash serve"
# addr = "127.0.0.1:3001"

[theme]
# Preset: default, dracula, nord, gruvbox, catppuccin, none
# Overridden by PDASH_THEME. NO_COLOR disables colors entirely.
# name = "default"
# mode = "auto"  # auto, light, dark
#
# Individual color overrides (hex or ANSI 256 numbers)
# primary = "#89b4fa"
# accent = "#f5c2e7"
#
# Use nerd font icons for favorite/archived/test/CI markers
# nerdfont = false
`

// DefaultConfig returns the default configuration template content.
func DefaultConfig() string {
	return defaultConfig
}

// Init creates a default config file at ~/.config/pdash/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, InitAt(path, force)
}

// InitAt writes the default config template to path.
func InitAt(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfig), 0644)
}
