package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Scan.Concurrency != DefaultConcurrency {
		t.Errorf("Scan.Concurrency = %d, want %d", cfg.Scan.Concurrency, DefaultConcurrency)
	}
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, DefaultServeAddr)
	}
	if strings.HasPrefix(cfg.DataDir, "~") {
		t.Errorf("DataDir = %q, want ~ expanded", cfg.DataDir)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvScanPath, "")
	t.Setenv(EnvTheme, "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("LoadFile() = %+v, want defaults", cfg)
	}
}

func TestLoadFile_Values(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvScanPath, "")
	t.Setenv(EnvTheme, "")

	path := writeConfig(t, `data_dir = "/srv/pdash"

[scan]
default_path = "/work"
concurrency = 2

[serve]
addr = "0.0.0.0:8080"

[theme]
name = "nord"
mode = "dark"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	want := Config{
		DataDir: "/srv/pdash",
		Scan:    ScanConfig{DefaultPath: "/work", Concurrency: 2},
		Serve:   ServeConfig{Addr: "0.0.0.0:8080"},
		Theme:   ThemeConfig{Name: "nord", Mode: "dark"},
	}
	if cfg != want {
		t.Errorf("LoadFile() = %+v, want %+v", cfg, want)
	}
}

func TestLoadFile_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvScanPath, "")

	path := writeConfig(t, `data_dir = "~/dash"`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if want := filepath.Join(home, "dash"); cfg.DataDir != want {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, want)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvScanPath, "")
	t.Setenv(EnvTheme, "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", `data_dir = `, "failed to parse config file"},
		{"relative data dir", `data_dir = "data"`, "data_dir must be absolute"},
		{"relative scan path", "[scan]\ndefault_path = \"../code\"", "scan.default_path must be absolute"},
		{"negative concurrency", "[scan]\nconcurrency = -1", "invalid scan.concurrency"},
		{"bad addr", "[serve]\naddr = \"localhost\"", "invalid serve.addr"},
		{"unknown theme", "[theme]\nname = \"solarized\"", "invalid theme.name"},
		{"unknown mode", "[theme]\nmode = \"dim\"", "invalid theme.mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadFile() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
			if cfg != Default() {
				t.Errorf("LoadFile() on error = %+v, want defaults", cfg)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	// t.Setenv mutates process env, so no t.Parallel()
	t.Run("PDASH_DATA_DIR overrides data dir", func(t *testing.T) {
		t.Setenv(EnvDataDir, "/tmp/pdash-data")
		cfg := Default()
		if err := applyEnvOverrides(&cfg); err != nil {
			t.Fatalf("applyEnvOverrides error: %v", err)
		}
		if cfg.DataDir != "/tmp/pdash-data" {
			t.Errorf("DataDir = %q, want %q", cfg.DataDir, "/tmp/pdash-data")
		}
	})

	t.Run("PDASH_SCAN_PATH overrides scan path", func(t *testing.T) {
		t.Setenv(EnvScanPath, "/projects")
		cfg := Default()
		if err := applyEnvOverrides(&cfg); err != nil {
			t.Fatalf("applyEnvOverrides error: %v", err)
		}
		if cfg.Scan.DefaultPath != "/projects" {
			t.Errorf("Scan.DefaultPath = %q, want %q", cfg.Scan.DefaultPath, "/projects")
		}
	})

	t.Run("relative env path rejected", func(t *testing.T) {
		t.Setenv(EnvDataDir, "relative")
		cfg := Default()
		if err := applyEnvOverrides(&cfg); err == nil {
			t.Error("applyEnvOverrides expected error for relative path")
		}
	})

	t.Run("empty env vars leave config unchanged", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		t.Setenv(EnvScanPath, "")
		t.Setenv(EnvTheme, "")
		cfg := Config{DataDir: "/a", Scan: ScanConfig{DefaultPath: "/b"}, Theme: ThemeConfig{Name: "dracula"}}
		if err := applyEnvOverrides(&cfg); err != nil {
			t.Fatalf("applyEnvOverrides error: %v", err)
		}
		if cfg.DataDir != "/a" || cfg.Scan.DefaultPath != "/b" || cfg.Theme.Name != "dracula" {
			t.Errorf("config changed: %+v", cfg)
		}
	})
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"", false},
		{"~", false},
		{"~/code", false},
		{"/abs/path", false},
		{".", true},
		{"..", true},
		{"code", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			err := ValidatePath(tt.path, "field")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfigIsValidTOML(t *testing.T) {
	t.Parallel()

	var raw Config
	if _, err := toml.Decode(DefaultConfig(), &raw); err != nil {
		t.Errorf("DefaultConfig() produces invalid TOML: %v\nContent:\n%s", err, DefaultConfig())
	}
}

func TestInitAt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := InitAt(path, false); err != nil {
		t.Fatalf("InitAt() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != DefaultConfig() {
		t.Error("InitAt() did not write the default template")
	}

	if err := InitAt(path, false); err == nil {
		t.Error("InitAt() on existing file expected error")
	}
	if err := InitAt(path, true); err != nil {
		t.Errorf("InitAt(force) error = %v", err)
	}
}

func TestShow(t *testing.T) {
	t.Parallel()

	out, err := Show(Config{DataDir: "/d", Scan: ScanConfig{Concurrency: 3}})
	if err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	var back Config
	if _, err := toml.Decode(out, &back); err != nil {
		t.Fatalf("Show() output is invalid TOML: %v", err)
	}
	if back.DataDir != "/d" || back.Scan.Concurrency != 3 {
		t.Errorf("Show() round trip = %+v", back)
	}
}

func TestIsValidThemeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		valid bool
	}{
		{"none", true},
		{"default", true},
		{"dracula", true},
		{"nord", true},
		{"invalid", false},
		{"", false},
		{"DRACULA", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isValidThemeName(tt.name); got != tt.valid {
				t.Errorf("isValidThemeName(%q) = %v, want %v", tt.name, got, tt.valid)
			}
		})
	}
}

func TestWithConfig_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{DataDir: "/data"}
		got := FromContext(WithConfig(context.Background(), cfg))
		if got != cfg {
			t.Error("FromContext did not return the stored config")
		}
	})

	t.Run("nil when not set", func(t *testing.T) {
		t.Parallel()
		if got := FromContext(context.Background()); got != nil {
			t.Errorf("FromContext on empty context = %v, want nil", got)
		}
	})
}

func TestValidateEnum(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		allowed []string
		wantErr bool
	}{
		{"empty value is ok", "", []string{"a", "b"}, false},
		{"valid value", "a", []string{"a", "b"}, false},
		{"invalid value", "c", []string{"a", "b"}, true},
		{"case sensitive", "A", []string{"a", "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateEnum(tt.value, "test", tt.allowed)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateEnum(%q, %v) error = %v, wantErr %v", tt.value, tt.allowed, err, tt.wantErr)
			}
		})
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []string
		want string
	}{
		{"single option", []string{"a"}, `"a"`},
		{"two options", []string{"a", "b"}, `"a" or "b"`},
		{"three options", []string{"a", "b", "c"}, `"a", "b", or "c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatOptions(tt.opts); got != tt.want {
				t.Errorf("formatOptions(%v) = %q, want %q", tt.opts, got, tt.want)
			}
		})
	}
}
