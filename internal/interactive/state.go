package interactive

import (
	"dua/internal/traverse"
	"dua/pkg/types"
)

// Command is a decoded navigation request
type Command int

const (
	// NoOp is any key that is not bound
	NoOp Command = iota
	DrillUp
	DrillDown
	MoveUp
	MoveDown
	ToggleSort
	Quit
)

func (c Command) String() string {
	switch c {
	case DrillUp:
		return "drill-up"
	case DrillDown:
		return "drill-down"
	case MoveUp:
		return "move-up"
	case MoveDown:
		return "move-down"
	case ToggleSort:
		return "toggle-sort"
	case Quit:
		return "quit"
	default:
		return "noop"
	}
}

// DisplayOptions is the part of the walk options the display needs
type DisplayOptions struct {
	ByteFormat types.ByteFormat
}

// DisplayOptionsFrom extracts display options from walk options
func DisplayOptionsFrom(opts types.WalkOptions) DisplayOptions {
	return DisplayOptions{ByteFormat: opts.ByteFormat}
}

// DisplayState is the cursor over the tree: Root is the directory whose
// children are shown, Selected the highlighted child, if any.
//
// Selected is an identity, never a position; positions are recomputed from
// the sorted view whenever they are needed.
type DisplayState struct {
	Root         traverse.NodeIndex
	Selected     traverse.NodeIndex
	HasSelection bool
	Sorting      types.SortMode
}

// Selection returns the selected node, if any
func (s DisplayState) Selection() (traverse.NodeIndex, bool) {
	return s.Selected, s.HasSelection
}

func (s DisplayState) selecting(idx traverse.NodeIndex) DisplayState {
	s.Selected = idx
	s.HasSelection = true
	return s
}

func (s DisplayState) selectingFirst(entries []Entry) DisplayState {
	if len(entries) == 0 {
		s.Selected = 0
		s.HasSelection = false
		return s
	}
	return s.selecting(entries[0].Index)
}

// Transition computes the state that follows cmd. It never fails: moves that
// are impossible (no parent, leaf selected, no children) leave the state as
// it is. Quit is handled by the caller and is a no-op here.
func Transition(tree *traverse.Tree, s DisplayState, cmd Command) DisplayState {
	switch cmd {
	case DrillUp:
		parent, ok := tree.Parent(s.Root)
		if !ok {
			return s
		}
		s.Root = parent
		return s.selectingFirst(SortedEntries(tree, parent, s.Sorting))

	case DrillDown:
		selected, ok := s.Selection()
		if !ok {
			return s
		}
		entries := SortedEntries(tree, selected, s.Sorting)
		if len(entries) == 0 {
			return s
		}
		s.Root = selected
		return s.selecting(entries[0].Index)

	case MoveUp, MoveDown:
		return moveSelection(tree, s, cmd == MoveDown)

	case ToggleSort:
		s.Sorting = s.Sorting.Toggle()
		return resolveSelection(tree, s)
	}
	return s
}

func moveSelection(tree *traverse.Tree, s DisplayState, down bool) DisplayState {
	entries := SortedEntries(tree, s.Root, s.Sorting)

	next := 0
	if selected, ok := s.Selection(); ok {
		if pos, found := position(entries, selected); found {
			switch {
			case down:
				next = pos + 1
			case pos > 0:
				next = pos - 1
			}
		}
	}

	if next < len(entries) {
		return s.selecting(entries[next].Index)
	}
	return s
}

// resolveSelection keeps the selection if it is still a child of Root in the
// current order and otherwise falls back to the first entry.
func resolveSelection(tree *traverse.Tree, s DisplayState) DisplayState {
	entries := SortedEntries(tree, s.Root, s.Sorting)
	if selected, ok := s.Selection(); ok {
		if _, found := position(entries, selected); found {
			return s
		}
	}
	return s.selectingFirst(entries)
}
