package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DirName is the per-workspace state directory.
	DirName = ".evalclient"

	ProdServerURL = "https://thinkful-ei-eval-server.herokuapp.com"
	DevServerURL  = "http://localhost:8080"
)

// Config holds all evalclient configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Session    SessionConfig    `yaml:"session"`
	Workspace  WorkspaceConfig  `yaml:"workspace"`
	Harness    HarnessConfig    `yaml:"harness"`
	Submission SubmissionConfig `yaml:"submission"`
	UI         UIConfig         `yaml:"ui"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig selects the evaluation service origin.
type ServerConfig struct {
	ProdURL string `yaml:"prod_url"`
	DevURL  string `yaml:"dev_url"`
	// Debug selects DevURL, like the ?debug=1 query flag of the web client.
	Debug bool `yaml:"debug"`
	// URL, when set, overrides both origins.
	URL string `yaml:"url"`
}

// SessionConfig configures the persisted token slot.
type SessionConfig struct {
	DatabasePath string `yaml:"database_path"`
	Key          string `yaml:"key"`
}

// WorkspaceConfig locates the learner's solution.
type WorkspaceConfig struct {
	StudentFile string `yaml:"student_file"`
	Watch       bool   `yaml:"watch"`
	Debounce    string `yaml:"debounce"`
}

// HarnessConfig configures script loading.
type HarnessConfig struct {
	ScriptTimeout  string   `yaml:"script_timeout"`
	AllowedImports []string `yaml:"allowed_imports"`
}

// SubmissionConfig describes the submission form.
type SubmissionConfig struct {
	Fields    []string `yaml:"fields"`
	CodeField string   `yaml:"code_field"` // empty disables attaching the solution source
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `yaml:"theme"` // "light", "dark" or "" for auto
	Width int    `yaml:"width"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ProdURL: ProdServerURL,
			DevURL:  DevServerURL,
		},
		Session: SessionConfig{
			DatabasePath: filepath.Join(DirName, "session.db"),
			Key:          "thinkful-eval-token",
		},
		Workspace: WorkspaceConfig{
			StudentFile: "student.go",
			Debounce:    "300ms",
		},
		Harness: HarnessConfig{
			ScriptTimeout: "5s",
			AllowedImports: []string{
				"errors", "fmt", "math", "sort", "strconv", "strings",
				"unicode", "unicode/utf8", "regexp", "bytes", "time",
			},
		},
		Submission: SubmissionConfig{
			Fields:    []string{"name", "repo"},
			CodeField: "code",
		},
		UI: UIConfig{
			Width: 80,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the config file location inside a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, DirName, "config.yaml")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// BaseURL returns the evaluation service origin in effect.
func (c *Config) BaseURL() string {
	if c.Server.URL != "" {
		return c.Server.URL
	}
	if c.Server.Debug {
		return c.Server.DevURL
	}
	return c.Server.ProdURL
}

// ResolvePath anchors a workspace-relative path.
func ResolvePath(workspace, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workspace, p)
}

// GetScriptTimeout returns the per-script evaluation timeout.
func (c *Config) GetScriptTimeout() time.Duration {
	d, err := time.ParseDuration(c.Harness.ScriptTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// GetDebounce returns the watch debounce window.
func (c *Config) GetDebounce() time.Duration {
	d, err := time.ParseDuration(c.Workspace.Debounce)
	if err != nil || d < 0 {
		return 300 * time.Millisecond
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	base := c.BaseURL()
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url: %q", base)
	}
	if c.Session.Key == "" {
		return fmt.Errorf("session key must not be empty")
	}
	if c.Workspace.StudentFile == "" {
		return fmt.Errorf("workspace student_file must not be empty")
	}
	seen := make(map[string]bool, len(c.Submission.Fields))
	for _, f := range c.Submission.Fields {
		if f == "" {
			return fmt.Errorf("submission field names must not be empty")
		}
		if seen[f] || f == c.Submission.CodeField {
			return fmt.Errorf("duplicate submission field: %s", f)
		}
		seen[f] = true
	}
	return nil
}
