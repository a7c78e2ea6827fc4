package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"dua/internal/tui/common"
	"dua/internal/tui/components"
	"dua/internal/tui/messages"
	"dua/internal/tui/styles"
	"dua/internal/tui/views"
	"dua/pkg/types"
)

// Model is the bubbletea side of a session. It only displays frames and
// forwards keys; navigation happens in the session goroutine.
type Model struct {
	theme  styles.Theme
	keys   types.KeyMap
	help   help.Model
	status *components.StatusBar

	frame  common.Frame
	width  int
	height int

	frames <-chan common.Frame
	done   <-chan struct{}
	queue  *keyQueue
	cancel context.CancelFunc

	result   types.WalkResult
	err      error
	finished bool
}

// NewModel creates a model that shows frames read from frames until done is
// closed. cancel aborts a running scan.
func NewModel(theme styles.Theme, frames <-chan common.Frame, done <-chan struct{}, queue *keyQueue, cancel context.CancelFunc) *Model {
	h := help.New()
	h.Styles.ShortKey = theme.Help
	h.Styles.ShortDesc = theme.Status

	status := components.NewStatusBar(theme)
	frame := common.Frame{Scanning: true, Selected: -1}
	status.SetFrame(frame)

	return &Model{
		theme:  theme,
		keys:   types.DefaultKeyMap(),
		help:   h,
		status: status,
		frame:  frame,
		frames: frames,
		done:   done,
		queue:  queue,
		cancel: cancel,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForFrame, m.status.Tick())
}

func (m *Model) waitForFrame() tea.Msg {
	select {
	case f := <-m.frames:
		return messages.FrameMsg{Frame: f}
	case <-m.done:
		return messages.RendererClosedMsg{}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case messages.FrameMsg:
		m.frame = msg.Frame
		m.status.SetFrame(msg.Frame)
		return m, m.waitForFrame

	case messages.RendererClosedMsg:
		return m, nil

	case messages.SessionDoneMsg:
		m.result = msg.Result
		m.err = msg.Err
		m.finished = true
		m.queue.Close()
		return m, tea.Quit

	case spinner.TickMsg:
		return m, m.status.Update(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.finished {
		return m, nil
	}
	if m.frame.Scanning {
		// the only thing to do while scanning is to stop
		if key.Matches(msg, m.keys.Quit) {
			m.cancel()
		}
		return m, nil
	}
	m.queue.Push(msg)
	return m, nil
}

// View implements tea.Model
func (m *Model) View() string {
	if m.finished {
		return ""
	}
	return views.RenderMainView(m)
}

// Frame returns the frame on screen
func (m *Model) Frame() common.Frame {
	return m.frame
}

// Theme returns the styles in use
func (m *Model) Theme() styles.Theme {
	return m.theme
}

func (m *Model) Width() int {
	return m.width
}

func (m *Model) Height() int {
	return m.height
}

// StatusLine renders the status bar
func (m *Model) StatusLine() string {
	return m.status.View()
}

// HelpView renders the key bindings
func (m *Model) HelpView() string {
	return m.help.View(m.keys)
}

// Result returns what the session reported, once it is finished
func (m *Model) Result() (types.WalkResult, error) {
	return m.result, m.err
}
