package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// CONFIG FILE TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProdServerURL, cfg.BaseURL())
	assert.Equal(t, "thinkful-eval-token", cfg.Session.Key)
	assert.Equal(t, "student.go", cfg.Workspace.StudentFile)
	assert.Equal(t, []string{"name", "repo"}, cfg.Submission.Fields)
	require.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DirName, "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.Debug = true
	cfg.Workspace.StudentFile = "solution.go"
	cfg.Submission.Fields = []string{"github"}

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded.Server.Debug)
	assert.Equal(t, DevServerURL, loaded.BaseURL())
	assert.Equal(t, "solution.go", loaded.Workspace.StudentFile)
	assert.Equal(t, []string{"github"}, loaded.Submission.Fields)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Session, cfg.Session)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestBaseURL(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProdServerURL, cfg.BaseURL())

	cfg.Server.Debug = true
	assert.Equal(t, DevServerURL, cfg.BaseURL())

	cfg.Server.URL = "http://eval.internal:9000"
	assert.Equal(t, "http://eval.internal:9000", cfg.BaseURL(), "explicit url wins over debug")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad url", func(c *Config) { c.Server.URL = "not a url" }},
		{"empty key", func(c *Config) { c.Session.Key = "" }},
		{"empty student file", func(c *Config) { c.Workspace.StudentFile = "" }},
		{"duplicate field", func(c *Config) { c.Submission.Fields = []string{"repo", "repo"} }},
		{"field shadows code", func(c *Config) { c.Submission.Fields = []string{"code"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5*time.Second, cfg.GetScriptTimeout())
	assert.Equal(t, 300*time.Millisecond, cfg.GetDebounce())

	cfg.Harness.ScriptTimeout = "garbage"
	cfg.Workspace.Debounce = "1s"
	assert.Equal(t, 5*time.Second, cfg.GetScriptTimeout())
	assert.Equal(t, time.Second, cfg.GetDebounce())
}

func TestResolvePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/ws", "student.go"), ResolvePath("/ws", "student.go"))
	assert.Equal(t, "/abs/student.go", ResolvePath("/ws", "/abs/student.go"))
	assert.Equal(t, "", ResolvePath("/ws", ""))
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

func TestEnvOverrides(t *testing.T) {
	t.Run("EVALCLIENT_DEBUG selects dev origin", func(t *testing.T) {
		t.Setenv("EVALCLIENT_DEBUG", "true")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, DevServerURL, cfg.BaseURL())
	})

	t.Run("EVALCLIENT_DEBUG=false beats the file", func(t *testing.T) {
		t.Setenv("EVALCLIENT_DEBUG", "false")

		cfg := DefaultConfig()
		cfg.Server.Debug = true
		require.NoError(t, cfg.applyEnvOverrides())
		assert.False(t, cfg.Server.Debug)
	})

	t.Run("paths and url", func(t *testing.T) {
		t.Setenv("EVALCLIENT_SERVER_URL", "http://127.0.0.1:1234")
		t.Setenv("EVALCLIENT_STUDENT_FILE", "answer.go")
		t.Setenv("EVALCLIENT_SESSION_DB", "/tmp/s.db")
		t.Setenv("EVALCLIENT_LOG_LEVEL", "debug")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "http://127.0.0.1:1234", cfg.BaseURL())
		assert.Equal(t, "answer.go", cfg.Workspace.StudentFile)
		assert.Equal(t, "/tmp/s.db", cfg.Session.DatabasePath)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("malformed bool is an error", func(t *testing.T) {
		t.Setenv("EVALCLIENT_DEBUG", "maybe")

		cfg := DefaultConfig()
		assert.Error(t, cfg.applyEnvOverrides())
	})
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	assert.False(t, lc.IsCategoryEnabled("api"))

	lc.DebugMode = true
	assert.True(t, lc.IsCategoryEnabled("api"))

	lc.Categories = map[string]bool{"api": false}
	assert.False(t, lc.IsCategoryEnabled("api"))
	assert.True(t, lc.IsCategoryEnabled("loader"))
}
