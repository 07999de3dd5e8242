package main

import (
	"fmt"
	"os"

	"evalclient/internal/api"
	"evalclient/internal/app"
	"evalclient/internal/config"
	"evalclient/internal/harness"
	"evalclient/internal/loader"
	"evalclient/internal/logging"
	"evalclient/internal/session"
	"evalclient/internal/workspace"

	"go.uber.org/zap"
)

// env is everything a command needs, built from flags and config.
type env struct {
	cfg   *config.Config
	ws    *workspace.Workspace
	store session.Store
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			logger.Warn("close session store", zap.Error(err))
		}
	}
	logging.CloseAll()
}

func setupEnv() (*env, error) {
	root := workspaceDir
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve workspace: %w", err)
		}
		root = cwd
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath(root)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if debugServer {
		cfg.Server.Debug = true
	}
	if watch {
		cfg.Workspace.Watch = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	ws, err := workspace.Open(root, cfg)
	if err != nil {
		return nil, err
	}

	if err := logging.Initialize(ws.LogsDir(), logging.Options{
		DebugMode:  cfg.Logging.DebugMode,
		Categories: cfg.Logging.Categories,
		Level:      cfg.Logging.Level,
		JSONFormat: cfg.Logging.JSONFormat(),
	}); err != nil {
		logger.Warn("file logging disabled", zap.Error(err))
	}
	logging.Boot("workspace=%s server=%s", ws.Root, cfg.BaseURL())

	store, err := session.NewSQLiteStore(config.ResolvePath(ws.Root, cfg.Session.DatabasePath), cfg.Session.Key)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	logger.Debug("environment ready",
		zap.String("workspace", ws.Root),
		zap.String("student_file", ws.StudentFile),
		zap.String("server", cfg.BaseURL()))
	return &env{cfg: cfg, ws: ws, store: store}, nil
}

// newController wires the controller for e.
func (e *env) newController() (*app.Controller, error) {
	client, err := api.NewClient(e.cfg.BaseURL())
	if err != nil {
		return nil, err
	}
	logging.API("service %s", client.BaseURL())

	deps := app.Deps{
		Store:  e.store,
		Client: client,
		NewLoader: func() app.TestLoader {
			return loader.New(harness.New(), loader.Options{
				Student:        e.ws.ReadStudentSource,
				AllowedImports: e.cfg.Harness.AllowedImports,
				ScriptTimeout:  e.cfg.GetScriptTimeout(),
			})
		},
		Submission: app.SubmissionOptions{
			Fields:    e.cfg.Submission.Fields,
			CodeField: e.cfg.Submission.CodeField,
		},
	}
	if e.cfg.Submission.CodeField != "" {
		deps.Student = e.ws.ReadStudentSource
	}
	return app.NewController(deps), nil
}
