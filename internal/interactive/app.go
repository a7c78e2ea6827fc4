// Package interactive is the navigation core of the disk-usage browser: the
// display state over a traversal tree, the transitions between states, and
// the event loop that drives them.
//
// It does no I/O of its own. Scanning, drawing and key decoding are supplied
// by the caller through Scanner, Renderer and a channel of key messages.
package interactive

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dua/internal/errors"
	"dua/internal/log"
	"dua/internal/traverse"
	"dua/pkg/types"
)

// Scanner produces a traversal, calling update whenever it wants a redraw
type Scanner interface {
	Scan(ctx context.Context, opts types.WalkOptions, input []string, update traverse.UpdateFunc) (*traverse.Traversal, error)
}

// ScanFunc adapts a function to the Scanner interface
type ScanFunc func(ctx context.Context, opts types.WalkOptions, input []string, update traverse.UpdateFunc) (*traverse.Traversal, error)

// Scan calls f
func (f ScanFunc) Scan(ctx context.Context, opts types.WalkOptions, input []string, update traverse.UpdateFunc) (*traverse.Traversal, error) {
	return f(ctx, opts, input, update)
}

// Renderer draws one full screen for the given state
type Renderer interface {
	Render(t *traverse.Traversal, display DisplayOptions, state DisplayState) error
}

// TerminalApp is the state of an interactive session after the scan
type TerminalApp struct {
	Traversal *traverse.Traversal
	Display   DisplayOptions
	State     DisplayState
	Keys      types.KeyMap
}

// Initialize runs the scan, drawing a selection-less snapshot on each
// progress update, and returns the app with the first entry of the root
// selected. A failed draw aborts the scan.
func Initialize(ctx context.Context, scanner Scanner, renderer Renderer, opts types.WalkOptions, input []string) (*TerminalApp, error) {
	display := DisplayOptionsFrom(opts)

	t, err := scanner.Scan(ctx, opts, input, func(t *traverse.Traversal) error {
		return renderer.Render(t, display, DisplayState{Root: t.RootIndex, Sorting: opts.Sorting})
	})
	if err != nil {
		return nil, err
	}

	state := DisplayState{Root: t.RootIndex, Sorting: opts.Sorting}
	state = state.selectingFirst(SortedEntries(t.Tree, state.Root, state.Sorting))

	return &TerminalApp{
		Traversal: t,
		Display:   display,
		State:     state,
		Keys:      types.DefaultKeyMap(),
	}, nil
}

// Decode maps a key message to the command bound to it
func (a *TerminalApp) Decode(msg tea.KeyMsg) Command {
	switch {
	case key.Matches(msg, a.Keys.DrillUp):
		return DrillUp
	case key.Matches(msg, a.Keys.DrillDown):
		return DrillDown
	case key.Matches(msg, a.Keys.Up):
		return MoveUp
	case key.Matches(msg, a.Keys.Down):
		return MoveDown
	case key.Matches(msg, a.Keys.ToggleSort):
		return ToggleSort
	case key.Matches(msg, a.Keys.Quit):
		return Quit
	}
	return NoOp
}

// Handle applies one command and reports whether the session goes on
func (a *TerminalApp) Handle(cmd Command) bool {
	if cmd == Quit {
		return false
	}
	a.State = Transition(a.Traversal.Tree, a.State, cmd)
	return true
}

// ProcessEvents draws the current state, then for every key draws again
// after applying it, until Quit or the end of keys. A draw failure ends the
// session with that error.
func (a *TerminalApp) ProcessEvents(renderer Renderer, keys <-chan tea.KeyMsg) (types.WalkResult, error) {
	if err := a.draw(renderer); err != nil {
		return types.WalkResult{}, err
	}

	for msg := range keys {
		cmd := a.Decode(msg)
		log.Debugf("key %q -> %s", msg.String(), cmd)
		if !a.Handle(cmd) {
			break
		}
		if err := a.draw(renderer); err != nil {
			return types.WalkResult{}, err
		}
	}

	return types.WalkResult{NumErrors: a.Traversal.IOErrors}, nil
}

func (a *TerminalApp) draw(renderer Renderer) error {
	if err := renderer.Render(a.Traversal, a.Display, a.State); err != nil {
		if errors.IsRenderError(err) {
			return err
		}
		return errors.NewRenderError("cannot draw", errors.RenderFailed, err)
	}
	return nil
}
