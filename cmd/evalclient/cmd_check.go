package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"evalclient/internal/app"
	"evalclient/internal/markup"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	errNoSession   = errors.New("no session stored: run evalclient and enter your passphrase first")
	errTestsFailed = errors.New("some tests failed")
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#43a047"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
)

func runCheck(cmd *cobra.Command, args []string) error {
	e, err := setupEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctrl, err := e.newController()
	if err != nil {
		return err
	}
	renderer, err := markup.NewPlainRenderer(e.cfg.UI.Width)
	if err != nil {
		return err
	}

	return check(ctx, ctrl, renderer, cmd.OutOrStdout())
}

// check restores the stored session headlessly and prints the outcome.
func check(ctx context.Context, ctrl *app.Controller, md *markup.Renderer, out io.Writer) error {
	ctrl.Settle(ctx, ctrl.Start(ctx))

	v := ctrl.View()
	if v.Kind != app.ViewInstructions {
		return errNoSession
	}
	if v.Error != "" {
		return fmt.Errorf("restore session: %s", v.Error)
	}

	for i, fragment := range v.Instructions {
		fmt.Fprintf(out, "── Test case %d ──\n%s\n\n", i+1, md.Render(fragment))
	}

	for _, r := range v.Tests.Results {
		if r.Passed {
			fmt.Fprintf(out, "%s %s\n", passStyle.Render("✓"), r.Title)
			continue
		}
		fmt.Fprintf(out, "%s %s\n    %s\n", failStyle.Render("✗"), r.Title, r.Message)
	}
	fmt.Fprintf(out, "\n%d passing, %d failing\n", v.Tests.Passed, v.Tests.Failed)

	logger.Info("check complete", zap.Int("passed", v.Tests.Passed), zap.Int("failed", v.Tests.Failed))
	if v.Tests.Failed > 0 {
		return errTestsFailed
	}
	return nil
}
