package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dua/internal/tui/common"
	"dua/internal/tui/styles"
)

// StatusBar shows scan progress, or the totals once the scan is done
type StatusBar struct {
	style      lipgloss.Style
	errorStyle lipgloss.Style
	spinner    spinner.Model
	loading    bool
	frame      common.Frame
}

func NewStatusBar(theme styles.Theme) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Help

	return &StatusBar{
		style:      theme.Status,
		errorStyle: theme.Error,
		spinner:    s,
	}
}

func (s *StatusBar) SetFrame(frame common.Frame) {
	s.frame = frame
	s.loading = frame.Scanning
}

// Tick starts the spinner
func (s *StatusBar) Tick() tea.Cmd {
	return s.spinner.Tick
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.loading {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (s *StatusBar) View() string {
	if s.frame.Scanning {
		return s.style.Render(fmt.Sprintf("%s Scanning... %d entries, %s", s.spinner.View(), s.frame.Entries, s.frame.TotalSize))
	}

	text := s.style.Render(fmt.Sprintf("Total: %s  Entries: %d  Sort: %s", s.frame.TotalSize, s.frame.Entries, s.frame.Sorting))
	if s.frame.IOErrors > 0 {
		text += "  " + s.errorStyle.Render(fmt.Sprintf("%d unreadable", s.frame.IOErrors))
	}
	return text
}
