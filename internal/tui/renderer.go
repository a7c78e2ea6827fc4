package tui

import (
	"dua/internal/errors"
	"dua/internal/interactive"
	"dua/internal/traverse"
	"dua/internal/tui/common"
)

// frameRenderer turns display states into frames and hands them to the
// model. Render blocks until the model has taken the frame, so every
// transition is drawn before the next key is processed.
//
// All calls come from the session goroutine, which also flips scanning.
type frameRenderer struct {
	frames   chan<- common.Frame
	done     <-chan struct{}
	scanning bool
}

func (r *frameRenderer) Render(t *traverse.Traversal, display interactive.DisplayOptions, state interactive.DisplayState) error {
	frame := BuildFrame(t, display, state)
	frame.Scanning = r.scanning

	select {
	case <-r.done:
		return errors.ErrRendererClosed
	default:
	}

	select {
	case r.frames <- frame:
		return nil
	case <-r.done:
		return errors.ErrRendererClosed
	}
}

// BuildFrame copies everything a view needs out of the tree
func BuildFrame(t *traverse.Traversal, display interactive.DisplayOptions, state interactive.DisplayState) common.Frame {
	root, _ := t.Tree.Entry(state.Root)
	entries := interactive.SortedEntries(t.Tree, state.Root, state.Sorting)
	selected, hasSelection := state.Selection()

	frame := common.Frame{
		Path:      t.Path(state.Root),
		TotalSize: display.ByteFormat.Display(root.Size),
		Sorting:   state.Sorting.Label(),
		Rows:      make([]common.Row, 0, len(entries)),
		Selected:  -1,
		Entries:   t.Entries,
		IOErrors:  t.IOErrors,
	}

	for i, e := range entries {
		var fraction float64
		if root.Size > 0 {
			fraction = float64(e.Data.Size) / float64(root.Size)
		}
		isSelected := hasSelection && e.Index == selected
		if isSelected {
			frame.Selected = i
		}
		frame.Rows = append(frame.Rows, common.Row{
			Name:     e.Data.Name,
			Size:     display.ByteFormat.Display(e.Data.Size),
			Bytes:    e.Data.Size,
			Fraction: fraction,
			IsDir:    e.Data.IsDir,
			IOError:  e.Data.MetadataIOError,
			Selected: isSelected,
		})
	}
	return frame
}
