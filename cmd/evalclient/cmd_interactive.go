package main

import (
	"context"

	"evalclient/cmd/evalclient/screen"
	"evalclient/cmd/evalclient/ui"
	"evalclient/internal/markup"
	"evalclient/internal/workspace"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runInteractive(cmd *cobra.Command, args []string) error {
	e, err := setupEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctrl, err := e.newController()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	styles := ui.NewStyles(ui.ThemeByName(e.cfg.UI.Theme))
	renderer, err := markup.NewRenderer(styles.Theme.IsDark, e.cfg.UI.Width)
	if err != nil {
		return err
	}

	var changes chan struct{}
	if e.cfg.Workspace.Watch {
		changes = make(chan struct{}, 1)
		w, err := workspace.NewWatcher(e.ws.StudentFile, e.cfg.GetDebounce(), func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			logger.Warn("watch disabled", zap.String("file", e.ws.StudentFile), zap.Error(err))
		}
		defer w.Stop()
	}

	model := screen.New(ctx, screen.Options{
		Controller:  ctrl,
		Styles:      styles,
		Renderer:    renderer,
		StudentFile: e.cfg.Workspace.StudentFile,
		Fields:      e.cfg.Submission.Fields,
		Changes:     changes,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
