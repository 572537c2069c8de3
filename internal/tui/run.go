package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the form until the user quits or ctx is cancelled.
func Run(ctx context.Context, assessor Assessor, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(ctx, assessor),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run terminal form: %w", err)
	}
	return nil
}
