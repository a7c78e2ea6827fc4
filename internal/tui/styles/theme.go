package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"dua/pkg/types"
)

// Theme defines the core UI styles
type Theme struct {
	App        lipgloss.Style
	Title      lipgloss.Style
	Path       lipgloss.Style
	Size       lipgloss.Style
	Bar        lipgloss.Style
	Directory  lipgloss.Style
	File       lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Status     lipgloss.Style
	Help       lipgloss.Style
	Unselected lipgloss.Style
}

// NewTheme builds the styles for output written to w. With types.NoColor
// every style renders as plain text.
func NewTheme(w io.Writer, color types.Color) Theme {
	r := lipgloss.NewRenderer(w)
	if color == types.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return Theme{
		App: r.NewStyle().
			Padding(0, 1),
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7")).
			Padding(0, 1),
		Path: r.NewStyle().
			Foreground(lipgloss.Color("#959595")),
		Size: r.NewStyle().
			Foreground(lipgloss.Color("#73F59F")),
		Bar: r.NewStyle().
			Foreground(lipgloss.Color("#7B61FF")),
		Directory: r.NewStyle().
			Foreground(lipgloss.Color("#81A1C1")).
			Bold(true),
		File: r.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC")),
		Selected: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7")),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF0000")),
		Status: r.NewStyle().
			Foreground(lipgloss.Color("#959595")),
		Help: r.NewStyle().
			Foreground(lipgloss.Color("#5A9")),
		Unselected: r.NewStyle().
			Foreground(lipgloss.Color("#666666")),
	}
}
