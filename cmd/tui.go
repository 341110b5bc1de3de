package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/todox/internal/shared"
	"github.com/desertthunder/todox/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive task view.
//
// The credential is checked first so a missing or rejected token never reaches the view.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.authenticate(ctx); err != nil {
		return fmt.Errorf("%w: run `todox auth login <token>` first", err)
	}

	filter, err := r.filter(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/todox-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.synchronizer(filter), r.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
