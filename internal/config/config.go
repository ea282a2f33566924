// internal/config/config.go
//
// This package handles configuration and the .conflictdeck directory
// structure. Every project that uses conflictdeck gets a .conflictdeck/
// folder created where the console is launched.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DeckDir is the name of the directory we create in each project.
	DeckDir = ".conflictdeck"

	defaultPageSize         = 25
	defaultDebounceMillis   = 300
	defaultDetectWindowDays = 28
	defaultNotifyPort       = 7643

	// EnvAPIURL and EnvAPIToken override the YAML backend settings. They
	// are also read from a .env file in the project directory when one
	// exists.
	EnvAPIURL   = "CONFLICTDECK_API_URL"
	EnvAPIToken = "CONFLICTDECK_API_TOKEN"
)

const defaultProjectConfigYAML = `# conflictdeck project configuration
version: 1

backend:
  # Base URL of the scheduling backend, e.g. https://scheduler.example.org/api
  # Overridden by CONFLICTDECK_API_URL when set.
  base_url: ""

ui:
  page_size: 25
  # Milliseconds to wait after the last keystroke before a search request.
  search_debounce_ms: 300
  # Days back from today covered by a manual detection run.
  detect_window_days: 28

notify:
  # When enabled, the console listens for conflict push events from the
  # backend and refreshes the list automatically.
  enabled: false
  host: 127.0.0.1
  port: 7643
`

// BackendConfig points the console at the scheduling backend.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token,omitempty"`
}

// UIConfig tunes list paging and input debouncing.
type UIConfig struct {
	PageSize         int `yaml:"page_size"`
	SearchDebounceMS int `yaml:"search_debounce_ms"`
	DetectWindowDays int `yaml:"detect_window_days"`
}

// NotifyConfig controls the push-event listener.
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// ProjectConfig models .conflictdeck/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Backend BackendConfig `yaml:"backend"`
	UI      UIConfig      `yaml:"ui"`
	Notify  NotifyConfig  `yaml:"notify"`
}

// Config holds the runtime configuration for the console.
type Config struct {
	// ProjectDir is the directory the console was launched from.
	ProjectDir string

	// DeckProjectDir is ProjectDir/.conflictdeck.
	DeckProjectDir string

	Project ProjectConfig
}

// InitDeckDir creates the .conflictdeck directory structure in the given
// project directory. Called when the console starts up.
func InitDeckDir(projectDir string) error {
	deckDir := filepath.Join(projectDir, DeckDir)
	dirs := []string{
		filepath.Join(deckDir, "logs"),
		filepath.Join(deckDir, "state"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(deckDir, "config.yaml"))
}

// NewConfig creates a Config populated from .conflictdeck/config.yaml, a
// .env file when present, and the environment.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:     projectDir,
		DeckProjectDir: filepath.Join(projectDir, DeckDir),
		Project:        defaultProjectConfig(),
	}
	// A missing .env is normal; godotenv only fills variables that are
	// not already exported.
	_ = godotenv.Load(filepath.Join(projectDir, ".env"))
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.applyEnvironment()
	return cfg, nil
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DeckProjectDir, "logs")
}

// StateDir returns the path to the state directory.
func (c *Config) StateDir() string {
	return filepath.Join(c.DeckProjectDir, "state")
}

// ProjectConfigPath returns the on-disk location of the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.DeckProjectDir, "config.yaml")
}

// BaseURL returns the backend base URL after environment overrides.
func (c *Config) BaseURL() string {
	return c.Project.Backend.BaseURL
}

// Token returns the bearer token, empty when the backend needs none.
func (c *Config) Token() string {
	return c.Project.Backend.Token
}

// PageSize returns the conflict-list page size.
func (c *Config) PageSize() int {
	return c.Project.UI.PageSize
}

// SearchDebounceMS returns the search debounce interval in milliseconds.
func (c *Config) SearchDebounceMS() int {
	return c.Project.UI.SearchDebounceMS
}

// DetectWindowDays returns how far back a manual detection run reaches.
func (c *Config) DetectWindowDays() int {
	return c.Project.UI.DetectWindowDays
}

// NotifyEnabled reports whether the push listener should run.
func (c *Config) NotifyEnabled() bool {
	return c.Project.Notify.Enabled
}

// NotifyAddress returns the listener's host:port.
func (c *Config) NotifyAddress() string {
	return fmt.Sprintf("%s:%d", c.Project.Notify.Host, c.Project.Notify.Port)
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project = parsed
	return nil
}

func (c *Config) applyEnvironment() {
	if url := strings.TrimSpace(os.Getenv(EnvAPIURL)); url != "" {
		c.Project.Backend.BaseURL = url
	}
	if token := strings.TrimSpace(os.Getenv(EnvAPIToken)); token != "" {
		c.Project.Backend.Token = token
	}
}

func defaultProjectConfig() ProjectConfig {
	cfg := ProjectConfig{Version: 1}
	cfg.applyDefaults()
	return cfg
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.UI.PageSize <= 0 {
		pc.UI.PageSize = defaultPageSize
	}
	if pc.UI.SearchDebounceMS <= 0 {
		pc.UI.SearchDebounceMS = defaultDebounceMillis
	}
	if pc.UI.DetectWindowDays <= 0 {
		pc.UI.DetectWindowDays = defaultDetectWindowDays
	}
	if strings.TrimSpace(pc.Notify.Host) == "" {
		pc.Notify.Host = "127.0.0.1"
	}
	if pc.Notify.Port <= 0 {
		pc.Notify.Port = defaultNotifyPort
	}
	pc.Backend.BaseURL = strings.TrimSpace(pc.Backend.BaseURL)
	pc.Backend.Token = strings.TrimSpace(pc.Backend.Token)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.UI.PageSize > 500 {
		return fmt.Errorf("ui.page_size must be at most 500")
	}
	if pc.Notify.Port > 65535 {
		return fmt.Errorf("notify.port must be a valid port")
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

// Save persists the current project settings back to config.yaml.
func (c *Config) Save() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.DeckProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure deck dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
