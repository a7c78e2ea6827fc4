package views

import (
	"strings"

	"dua/internal/tui/common"
	"dua/internal/tui/components"
)

// chromeLines is the header, the blank line under it, the status line and
// the help line
const chromeLines = 4

// RenderMainView draws the whole screen for the model's current frame
func RenderMainView(m common.ModelReader) string {
	theme := m.Theme()
	frame := m.Frame()

	var sb strings.Builder
	sb.WriteString(components.RenderHeader(theme, frame))
	sb.WriteString("\n\n")

	pane := components.NewEntriesPane(theme)
	width := m.Width()
	if width > 2 {
		width -= 2
	}
	pane.SetSize(width, EntriesHeight(m.Height()))
	selected := frame.Selected
	if frame.Scanning {
		selected = -1
	}
	pane.SetRows(frame.Rows, selected)
	body := pane.View()
	sb.WriteString(body)

	// keep the status and help lines at the bottom of the screen
	if h := EntriesHeight(m.Height()); h > 0 {
		if shown := strings.Count(body, "\n") + 1; shown < h {
			sb.WriteString(strings.Repeat("\n", h-shown))
		}
	}

	sb.WriteString("\n" + m.StatusLine())
	sb.WriteString("\n" + theme.Help.Render(m.HelpView()))

	return theme.App.Render(sb.String())
}

// EntriesHeight is how many rows fit on a screen of the given height; 0 means
// the height is not known yet and every row is drawn
func EntriesHeight(screen int) int {
	if screen <= 0 {
		return 0
	}
	if h := screen - chromeLines; h > 1 {
		return h
	}
	return 1
}
