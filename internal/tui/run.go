package tui

import (
	"context"
	"errors"

	"starfolk-client/internal/app"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/zerr"
)

// Run shows the browser over a until the user quits or ctx is done. It starts
// a and stops it on return.
func Run(ctx context.Context, a *app.App, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(a)
	go m.queue.run(ctx)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(m, opts...)

	unsubscribe := a.Subscribe(func(ev app.Event) {
		p.Send(viewMsg(ev.View))
	})
	defer func() {
		unsubscribe()
		a.Stop()
	}()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return zerr.Wrap(err, "running terminal browser")
	}
	return nil
}
