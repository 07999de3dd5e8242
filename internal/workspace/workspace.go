// Package workspace locates and reads the learner's solution and watches
// it for edits.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"evalclient/internal/config"
	"evalclient/internal/logging"
)

// Workspace is the exercise directory the client runs in.
type Workspace struct {
	Root        string
	StudentFile string // absolute path of the solution file
}

// Open resolves the workspace root and solution file from cfg.
func Open(root string, cfg *config.Config) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace %s is not a directory", abs)
	}

	return &Workspace{
		Root:        abs,
		StudentFile: config.ResolvePath(abs, cfg.Workspace.StudentFile),
	}, nil
}

// StateDir returns the per-workspace state directory.
func (w *Workspace) StateDir() string {
	return filepath.Join(w.Root, config.DirName)
}

// LogsDir returns where category logs are written.
func (w *Workspace) LogsDir() string {
	return filepath.Join(w.StateDir(), "logs")
}

// ReadStudentSource returns the current solution source.
func (w *Workspace) ReadStudentSource() (string, error) {
	data, err := os.ReadFile(w.StudentFile)
	if err != nil {
		return "", fmt.Errorf("read solution: %w", err)
	}
	logging.WorkspaceDebug("read %d bytes from %s", len(data), w.StudentFile)
	return string(data), nil
}

// HasStudentFile reports whether the solution file exists.
func (w *Workspace) HasStudentFile() bool {
	info, err := os.Stat(w.StudentFile)
	return err == nil && !info.IsDir()
}
