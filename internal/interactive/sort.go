package interactive

import (
	"cmp"
	"slices"

	"dua/internal/traverse"
	"dua/pkg/types"
)

// Entry is one child of a node as shown in the entries pane
type Entry struct {
	Index traverse.NodeIndex
	Data  traverse.EntryData
}

// SortedEntries returns the direct children of node ordered by sorting.
// Names compare bytewise; size ties are broken by name so the order is total.
// It does not look below the direct children.
func SortedEntries(tree *traverse.Tree, node traverse.NodeIndex, sorting types.SortMode) []Entry {
	children := tree.Children(node)
	entries := make([]Entry, 0, len(children))
	for _, idx := range children {
		data, _ := tree.Entry(idx)
		entries = append(entries, Entry{Index: idx, Data: data})
	}

	byName := func(a, b Entry) int {
		if c := cmp.Compare(a.Data.Name, b.Data.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	}

	switch sorting {
	case types.SortBySizeAscending:
		slices.SortFunc(entries, func(a, b Entry) int {
			if c := cmp.Compare(a.Data.Size, b.Data.Size); c != 0 {
				return c
			}
			return byName(a, b)
		})
	case types.SortBySizeDescending:
		slices.SortFunc(entries, func(a, b Entry) int {
			if c := cmp.Compare(b.Data.Size, a.Data.Size); c != 0 {
				return c
			}
			return byName(a, b)
		})
	default:
		slices.SortFunc(entries, byName)
	}
	return entries
}

// position finds idx in entries by identity
func position(entries []Entry, idx traverse.NodeIndex) (int, bool) {
	for i, e := range entries {
		if e.Index == idx {
			return i, true
		}
	}
	return 0, false
}
