package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Errors surfaced to the caller of a view.
var (
	// ErrNoSelection is returned when Enter is pressed with nothing selected.
	ErrNoSelection = errors.New("missing location selection")

	// ErrCanceled is returned when the user leaves a search view without
	// choosing.
	ErrCanceled = errors.New("canceled")
)

// DefaultFrameInterval is the render loop's input/redraw period.
const DefaultFrameInterval = 16 * time.Millisecond

// Messages

type frameMsg time.Time

// Commands

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// themeCmd reports a theme change from a command so the callback may touch
// the disk without stalling the render loop.
func themeCmd(onTheme func(string), name string) tea.Cmd {
	if onTheme == nil {
		return nil
	}
	return func() tea.Msg {
		onTheme(name)
		return nil
	}
}

func frameInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultFrameInterval
	}
	return d
}

func programOptions(ctx context.Context, frame time.Duration) []tea.ProgramOption {
	fps := int(time.Second / frameInterval(frame))
	fps = min(max(fps, 1), 120)
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithFPS(fps),
	}
}

// runProgram runs m to completion and returns the final model. A cancelled
// parent context is reported as the context's error.
func runProgram(ctx context.Context, m tea.Model, frame time.Duration) (tea.Model, error) {
	p := tea.NewProgram(m, programOptions(ctx, frame)...)
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return final, nil
}
