package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "json",
			file:    "config.json",
			content: `{"archive_path": "/tmp/a.db", "spending_limit": 80, "port": 9000, "log_level": "debug"}`,
		},
		{
			name:    "yaml",
			file:    "config.yaml",
			content: "archive_path: /tmp/a.db\nspending_limit: 80\nport: 9000\nlog_level: debug\n",
		},
		{
			name:    "toml",
			file:    "config.toml",
			content: "archive_path = \"/tmp/a.db\"\nspending_limit = 80.0\nport = 9000\nlog_level = \"debug\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.ArchivePath != "/tmp/a.db" || cfg.SpendingLimit != 80 || cfg.Port != 9000 || cfg.LogLevel != "debug" {
				t.Errorf("unexpected config %+v", cfg)
			}
			if cfg.Level() != slog.LevelDebug {
				t.Errorf("Level() = %v", cfg.Level())
			}
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.LogLevel != "info" || cfg.SpendingLimit != 0 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	bad := writeFile(t, dir, "bad.json", "{not json")
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("bad json err = %v", err)
	}

	ini := writeFile(t, dir, "config.ini", "port=1")
	if _, err := Load(ini); err == nil || !strings.Contains(err.Error(), "unsupported config format") {
		t.Errorf("ini err = %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("BUDGET_ARCHIVE", "/data/archive.db")
	t.Setenv("BUDGET_PORT", "3000")
	t.Setenv("BUDGET_SPENDING_LIMIT", "75.5")
	t.Setenv("BUDGET_LOG_LEVEL", "warn")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.ArchivePath != "/data/archive.db" || cfg.Port != 3000 || cfg.SpendingLimit != 75.5 || cfg.LogLevel != "warn" {
		t.Errorf("config after env = %+v", cfg)
	}
}

func TestApplyEnvInvalidPort(t *testing.T) {
	t.Setenv("BUDGET_PORT", "abc")
	cfg := Default()
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected error for non-numeric port")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid",
			config: Config{Port: 8080, LogLevel: "info", SpendingLimit: 90},
		},
		{
			name:        "port out of range",
			config:      Config{Port: 70000, LogLevel: "info"},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "negative limit",
			config:      Config{Port: 8080, LogLevel: "info", SpendingLimit: -1},
			wantErr:     true,
			errorString: "invalid spending limit -1.00: must not be negative",
		},
		{
			name:        "unknown level",
			config:      Config{Port: 8080, LogLevel: "chatty"},
			wantErr:     true,
			errorString: "unknown log level: chatty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Validate() error = %q, want substring %q", err, tt.errorString)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.json", "c.yaml", "c.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "nested", name)
			want := &Config{ArchivePath: "/tmp/x.db", SpendingLimit: 62.5, Port: 4000, LogLevel: "error"}
			if err := Save(path, want); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if *got != *want {
				t.Errorf("round trip = %+v, want %+v", got, want)
			}
		})
	}
}
