package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("unexpected default level %q", cfg.LogLevel())
	}
	if cfg.Backend.URL != "" {
		t.Fatalf("expected empty backend url, got %q", cfg.Backend.URL)
	}
}

func TestLoadReadsTOML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[backend]
url = "https://project.example.co"
anon_key = "key-1"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend.URL != "https://project.example.co" || cfg.AnonKey() != "key-1" {
		t.Fatalf("unexpected backend config %#v", cfg.Backend)
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("unexpected level %q", cfg.LogLevel())
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		url     string
		key     string
		wantErr string
	}{
		{name: "valid", url: "https://project.example.co", key: "key-1"},
		{name: "empty", url: "", key: "", wantErr: "required"},
		{name: "placeholder url", url: PlaceholderURL, key: "key-1", wantErr: "placeholder"},
		{name: "placeholder key", url: "https://project.example.co", key: PlaceholderAnonKey, wantErr: "placeholder"},
		{name: "bad scheme", url: "ftp://project.example.co", key: "key-1", wantErr: "http"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Backend.URL = tc.url
			cfg.Backend.AnonKey = tc.key
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestBackendURLTrimsTrailingSlash(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Backend.URL = "https://project.example.co/ "
	if got := cfg.BackendURL(); got != "https://project.example.co" {
		t.Fatalf("unexpected url %q", got)
	}
}
