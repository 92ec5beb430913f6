// Package config handles loading and validation of pdash configuration.
//
// Configuration is read from ~/.config/pdash/config.toml with environment
// variable overrides for directory settings.
//
// # Configuration Sources (highest priority first)
//
//   - PDASH_DATA_DIR env var: directory holding the persisted documents
//   - PDASH_SCAN_PATH env var: default scan root for first-run settings
//   - PDASH_THEME env var: theme preset name
//   - Config file settings
//   - Default values
//
// # Key Settings
//
//   - data_dir: tag documents and settings.json (default: ~/.pdash)
//   - scan.default_path: seeds settings.scanPath (default: ~/code_workshop)
//   - scan.concurrency: parallel project inspection (default: 8)
//   - serve.addr: listen address for "pdash serve" (default: 127.0.0.1:3001)
//   - theme.name / theme.mode: UI color preset
//
// # Path Validation
//
// Directory paths must be absolute or start with ~ (no relative paths like "."
// or "..") to avoid confusion about the working directory.
package config
