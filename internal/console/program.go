package console

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/esplink/internal/device"
	"github.com/muurk/esplink/internal/notify"
)

// sender is the part of *tea.Program the renderer needs
type sender interface {
	Send(msg tea.Msg)
}

// Renderer forwards Board events into a running program.
func Renderer(p sender) notify.Renderer {
	return notify.RendererFunc(func(t notify.Toast) {
		p.Send(ToastMsg(t))
	})
}

// Run starts the interactive console and blocks until the user quits or ctx
// is cancelled. client must notify board so toasts show up in the overlay.
func Run(ctx context.Context, client *device.Client, board *notify.Board, defaults Defaults) error {
	m := New(ctx, client, board, defaults)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	board.AddRenderer(Renderer(p))

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("console failed: %w", err)
	}
	return nil
}
