package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dua/internal/tui/common"
	"dua/internal/tui/styles"
)

const (
	barWidth  = 10
	sizeWidth = 10
)

// EntriesPane lists the children of the displayed directory with their
// size and share of the total
type EntriesPane struct {
	theme    styles.Theme
	rows     []common.Row
	selected int
	width    int
	height   int
}

// NewEntriesPane creates an empty pane with no selection
func NewEntriesPane(theme styles.Theme) *EntriesPane {
	return &EntriesPane{theme: theme, selected: -1}
}

// SetRows replaces the rows; selected is a row position or -1
func (p *EntriesPane) SetRows(rows []common.Row, selected int) {
	p.rows = rows
	p.selected = selected
}

// SetSize sets the space the pane may use; a height of 0 shows every row
func (p *EntriesPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Offset is the first visible row: the top, unless that would hide the
// selection, in which case the selection sits on the last line
func Offset(rows, height, selected int) int {
	if height <= 0 || rows <= height || selected < height {
		return 0
	}
	if selected >= rows {
		selected = rows - 1
	}
	return selected - height + 1
}

// View renders the visible rows, scrolled to keep the selection on screen
func (p *EntriesPane) View() string {
	if len(p.rows) == 0 {
		return p.theme.Unselected.Render("  (empty)")
	}

	start := Offset(len(p.rows), p.height, p.selected)
	end := len(p.rows)
	if p.height > 0 && start+p.height < end {
		end = start + p.height
	}

	var s strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			s.WriteString("\n")
		}
		s.WriteString(p.renderRow(p.rows[i], i == p.selected))
	}
	return s.String()
}

func (p *EntriesPane) renderRow(row common.Row, selected bool) string {
	cursor := " "
	if selected {
		cursor = ">"
	}

	name := row.Name
	if row.IsDir {
		name += "/"
	}

	nameStyle := p.theme.File
	switch {
	case row.IOError:
		nameStyle = p.theme.Error
		name += " (unreadable)"
	case row.IsDir:
		nameStyle = p.theme.Directory
	}

	if selected {
		line := fmt.Sprintf("%s %*s │ %s │ %s", cursor, sizeWidth, row.Size, Bar(row.Fraction), name)
		return p.theme.Selected.MaxWidth(p.width).Render(line)
	}

	line := fmt.Sprintf("%s %s │ %s │ %s",
		cursor,
		p.theme.Size.Render(fmt.Sprintf("%*s", sizeWidth, row.Size)),
		p.theme.Bar.Render(Bar(row.Fraction)),
		nameStyle.Render(name))
	return lipgloss.NewStyle().MaxWidth(p.width).Render(line)
}

// Bar draws fraction as a fixed-width gauge followed by a percentage
func Bar(fraction float64) string {
	switch {
	case fraction < 0:
		fraction = 0
	case fraction > 1:
		fraction = 1
	}
	filled := int(fraction*barWidth + 0.5)
	return fmt.Sprintf("%s%s %5.1f%%",
		strings.Repeat("█", filled),
		strings.Repeat(" ", barWidth-filled),
		fraction*100)
}
