package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	deckDir := filepath.Join(projectDir, DeckDir)
	if err := os.MkdirAll(deckDir, 0o755); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, DeckProjectDir: deckDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if c.PageSize() != defaultPageSize {
		t.Fatalf("expected default page size %d, got %d", defaultPageSize, c.PageSize())
	}
	if c.SearchDebounceMS() != defaultDebounceMillis {
		t.Fatalf("expected default debounce %d, got %d", defaultDebounceMillis, c.SearchDebounceMS())
	}
	if c.NotifyEnabled() {
		t.Fatalf("notify must default to disabled")
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	deckDir := filepath.Join(projectDir, DeckDir)
	if err := os.MkdirAll(deckDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
backend:
  base_url: https://scheduler.example.org/api
  token: yaml-token
ui:
  page_size: 50
  search_debounce_ms: 150
notify:
  enabled: true
  host: 0.0.0.0
  port: 9000
`)
	if err := os.WriteFile(filepath.Join(deckDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c := &Config{ProjectDir: projectDir, DeckProjectDir: deckDir, Project: defaultProjectConfig()}
	if err := c.loadProjectConfig(); err != nil {
		t.Fatalf("loadProjectConfig returned error: %v", err)
	}
	if c.BaseURL() != "https://scheduler.example.org/api" {
		t.Fatalf("base url not loaded, got %q", c.BaseURL())
	}
	if c.PageSize() != 50 || c.SearchDebounceMS() != 150 {
		t.Fatalf("ui settings not loaded: %+v", c.Project.UI)
	}
	if !c.NotifyEnabled() || c.NotifyAddress() != "0.0.0.0:9000" {
		t.Fatalf("notify settings not loaded: %+v", c.Project.Notify)
	}
}

func TestEnvironmentOverridesBackendSettings(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDeckDir(projectDir); err != nil {
		t.Fatalf("init deck dir: %v", err)
	}
	t.Setenv(EnvAPIURL, "https://override.example.org")
	t.Setenv(EnvAPIToken, "env-token")
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if c.BaseURL() != "https://override.example.org" {
		t.Fatalf("env must override base url, got %q", c.BaseURL())
	}
	if c.Token() != "env-token" {
		t.Fatalf("env must override token, got %q", c.Token())
	}
}

func TestInitDeckDirIsIdempotent(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDeckDir(projectDir); err != nil {
		t.Fatalf("first init: %v", err)
	}
	custom := []byte("version: 1\nui:\n  page_size: 10\n")
	if err := os.WriteFile(filepath.Join(projectDir, DeckDir, "config.yaml"), custom, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InitDeckDir(projectDir); err != nil {
		t.Fatalf("second init: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(projectDir, DeckDir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(custom) {
		t.Fatalf("init must not clobber an existing config")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	pc := defaultProjectConfig()
	pc.UI.PageSize = 9999
	if err := pc.validate(); err == nil {
		t.Fatalf("oversized page size must fail validation")
	}
	pc = defaultProjectConfig()
	pc.Notify.Port = 70000
	if err := pc.validate(); err == nil {
		t.Fatalf("invalid port must fail validation")
	}
}

func TestSaveRoundTrips(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDeckDir(projectDir); err != nil {
		t.Fatalf("init deck dir: %v", err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	c.Project.UI.PageSize = 100
	if err := c.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	reloaded, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if reloaded.PageSize() != 100 {
		t.Fatalf("saved page size lost, got %d", reloaded.PageSize())
	}
}
