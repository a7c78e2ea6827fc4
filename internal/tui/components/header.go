package components

import (
	"dua/internal/tui/common"
	"dua/internal/tui/styles"
)

// RenderHeader draws the title line with the displayed directory
func RenderHeader(theme styles.Theme, frame common.Frame) string {
	path := frame.Path
	if path == "" {
		path = "(all inputs)"
	}
	return theme.Title.Render("dua") + " " + theme.Path.Render(path)
}
