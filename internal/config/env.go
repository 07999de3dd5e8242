package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the environment variables that win over the config file.
// Pointers distinguish "unset" from zero values.
type envOverrides struct {
	Debug       *bool   `env:"EVALCLIENT_DEBUG"`
	ServerURL   *string `env:"EVALCLIENT_SERVER_URL"`
	StudentFile *string `env:"EVALCLIENT_STUDENT_FILE"`
	SessionDB   *string `env:"EVALCLIENT_SESSION_DB"`
	LogLevel    *string `env:"EVALCLIENT_LOG_LEVEL"`
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.Debug != nil {
		c.Server.Debug = *o.Debug
	}
	if o.ServerURL != nil && *o.ServerURL != "" {
		c.Server.URL = *o.ServerURL
	}
	if o.StudentFile != nil && *o.StudentFile != "" {
		c.Workspace.StudentFile = *o.StudentFile
	}
	if o.SessionDB != nil && *o.SessionDB != "" {
		c.Session.DatabasePath = *o.SessionDB
	}
	if o.LogLevel != nil && *o.LogLevel != "" {
		c.Logging.Level = *o.LogLevel
	}
	return nil
}
