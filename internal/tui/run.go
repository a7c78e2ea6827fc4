// Package tui runs an interactive session in the terminal with bubbletea.
//
// The scan and the navigation loop run on a session goroutine; the bubbletea
// program only draws the frames that goroutine produces and feeds it keys.
package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"dua/internal/errors"
	"dua/internal/interactive"
	"dua/internal/log"
	"dua/internal/traverse"
	"dua/internal/tui/common"
	"dua/internal/tui/messages"
	"dua/internal/tui/styles"
	"dua/pkg/types"
)

type sessionResult struct {
	result types.WalkResult
	err    error
}

// Run scans input and lets the user browse the result until they quit
func Run(ctx context.Context, opts types.WalkOptions, input []string) (types.WalkResult, error) {
	return run(ctx, interactive.ScanFunc(traverse.FromWalk), opts, input, tea.WithAltScreen())
}

func run(ctx context.Context, scanner interactive.Scanner, opts types.WalkOptions, input []string, progOpts ...tea.ProgramOption) (types.WalkResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan common.Frame)
	done := make(chan struct{})
	queue := newKeyQueue()
	go queue.run(done)

	renderer := &frameRenderer{frames: frames, done: done}
	model := NewModel(styles.NewTheme(os.Stdout, opts.Color), frames, done, queue, cancel)
	p := tea.NewProgram(model, progOpts...)

	resultc := make(chan sessionResult, 1)
	go func() {
		res, err := session(ctx, scanner, renderer, queue.Keys(), opts, input)
		resultc <- sessionResult{result: res, err: err}
		p.Send(messages.SessionDoneMsg{Result: res, Err: err})
	}()

	_, runErr := p.Run()
	close(done)
	cancel()
	out := <-resultc

	if errors.Is(runErr, tea.ErrInterrupted) {
		log.Debug("interrupted, ending the session as a quit")
		runErr = nil
		if errors.Is(out.err, errors.ErrRendererClosed) {
			out.err = nil
		}
	}
	if runErr != nil && (out.err == nil || errors.Is(out.err, errors.ErrRendererClosed)) {
		return out.result, errors.NewRenderError("terminal failed", errors.RenderFailed, runErr)
	}
	return out.result, out.err
}

// session is the whole life of the navigation core: scan, then handle keys
func session(ctx context.Context, scanner interactive.Scanner, r *frameRenderer, keys <-chan tea.KeyMsg,
	opts types.WalkOptions, input []string) (types.WalkResult, error) {
	r.scanning = true
	app, err := interactive.Initialize(ctx, scanner, r, opts, input)
	if err != nil {
		log.LogWithError(err).Debug("scan did not complete")
		return types.WalkResult{}, err
	}
	r.scanning = false

	res, err := app.ProcessEvents(r, keys)
	if err != nil {
		log.LogWithError(err).Debug("session ended with a drawing failure")
	}
	return res, err
}
