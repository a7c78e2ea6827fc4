package views

import (
	"fmt"
	"io"
	"strings"
	"testing"

	alsrt "github.com/alecthomas/assert"
	"github.com/stretchr/testify/assert"

	"dua/internal/tui/common"
	"dua/internal/tui/styles"
	"dua/pkg/types"
)

// Mock model for testing
type mockModel struct {
	frame  common.Frame
	width  int
	height int
}

func (m *mockModel) Frame() common.Frame { return m.frame }
func (m *mockModel) Theme() styles.Theme { return styles.NewTheme(io.Discard, types.NoColor) }
func (m *mockModel) Width() int          { return m.width }
func (m *mockModel) Height() int         { return m.height }
func (m *mockModel) StatusLine() string  { return "STATUS" }
func (m *mockModel) HelpView() string    { return "j down • q quit" }

func rows(n int) []common.Row {
	out := make([]common.Row, n)
	for i := range out {
		out[i] = common.Row{Name: fmt.Sprintf("entry-%02d", i), Size: "1 B"}
	}
	return out
}

func TestRenderMainView(t *testing.T) {
	tests := []struct {
		name     string
		model    *mockModel
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name: "scan root",
			model: &mockModel{frame: common.Frame{
				Rows:     []common.Row{{Name: "src", Size: "2 kB", IsDir: true, Fraction: 1}},
				Selected: 0,
			}},
			contains: []string{"dua", "(all inputs)", "src/", "2 kB", "100.0%", "STATUS", "q quit"},
		},
		{
			name: "subdirectory",
			model: &mockModel{frame: common.Frame{
				Path:     "/data/src",
				Rows:     []common.Row{{Name: "main.go", Size: "10 B"}},
				Selected: 0,
			}},
			contains: []string{"/data/src", "> ", "main.go"},
			excludes: []string{"(all inputs)", "main.go/"},
		},
		{
			name:     "empty directory",
			model:    &mockModel{frame: common.Frame{Path: "/empty", Selected: -1}},
			contains: []string{"(empty)"},
			excludes: []string{">"},
		},
		{
			name: "no cursor while scanning",
			model: &mockModel{frame: common.Frame{
				Rows:     rows(2),
				Selected: 1,
				Scanning: true,
			}},
			excludes: []string{">"},
		},
		{
			name: "unreadable entry",
			model: &mockModel{frame: common.Frame{
				Rows:     []common.Row{{Name: "locked", IOError: true, IsDir: true}},
				Selected: -1,
			}},
			contains: []string{"locked/ (unreadable)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := RenderMainView(tt.model)
			for _, s := range tt.contains {
				alsrt.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestRenderMainViewScrolling(t *testing.T) {
	m := &mockModel{
		frame:  common.Frame{Rows: rows(20), Selected: 15},
		width:  60,
		height: 10,
	}

	output := RenderMainView(m)
	alsrt.Contains(t, output, "entry-15")
	assert.NotContains(t, output, "entry-16")
	assert.NotContains(t, output, "entry-09")
	alsrt.Equal(t, 10, len(strings.Split(output, "\n")), "fills exactly the screen")

	m.frame.Selected = 0
	output = RenderMainView(m)
	alsrt.Contains(t, output, "entry-00")
	alsrt.Contains(t, output, "entry-05")
	assert.NotContains(t, output, "entry-06")
}

func TestEntriesHeight(t *testing.T) {
	assert.Equal(t, 0, EntriesHeight(0))
	assert.Equal(t, 1, EntriesHeight(3))
	assert.Equal(t, 20, EntriesHeight(24))
}
