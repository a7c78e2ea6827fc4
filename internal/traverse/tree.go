package traverse

// NodeIndex identifies a node of a Tree. Indices are stable for the life of
// the tree: nodes are only ever appended.
type NodeIndex int

// EntryData holds the display-relevant facts of one filesystem object.
type EntryData struct {
	// Name is the raw path segment; it is not necessarily valid UTF-8
	Name string
	// Size is the apparent size of a file, or the sum of all descendants
	// for a directory
	Size uint64
	IsDir bool
	// MetadataIOError is set when the entry could not be stat'ed or read
	MetadataIOError bool
}

// Tree is an append-only arena of entries with directory -> child edges.
// Every node has at most one parent; AddChild is the only way to create an
// edge, which keeps that true by construction.
type Tree struct {
	nodes    []EntryData
	parents  []NodeIndex
	children [][]NodeIndex
}

const noParent NodeIndex = -1

// NewTree creates an empty tree
func NewTree() *Tree {
	return &Tree{}
}

// AddNode appends a parentless node and returns its index
func (t *Tree) AddNode(e EntryData) NodeIndex {
	idx := NodeIndex(len(t.nodes))
	t.nodes = append(t.nodes, e)
	t.parents = append(t.parents, noParent)
	t.children = append(t.children, nil)
	return idx
}

// AddChild appends a node as the last child of parent and returns its index
func (t *Tree) AddChild(parent NodeIndex, e EntryData) NodeIndex {
	idx := t.AddNode(e)
	if t.Contains(parent) {
		t.parents[idx] = parent
		t.children[parent] = append(t.children[parent], idx)
	}
	return idx
}

// Len returns the number of nodes
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Contains reports whether idx names a node of the tree
func (t *Tree) Contains(idx NodeIndex) bool {
	return idx >= 0 && int(idx) < len(t.nodes)
}

// Entry returns the data of a node
func (t *Tree) Entry(idx NodeIndex) (EntryData, bool) {
	if !t.Contains(idx) {
		return EntryData{}, false
	}
	return t.nodes[idx], true
}

// Parent returns the source of idx's single incoming edge, if any
func (t *Tree) Parent(idx NodeIndex) (NodeIndex, bool) {
	if !t.Contains(idx) || t.parents[idx] == noParent {
		return noParent, false
	}
	return t.parents[idx], true
}

// Children returns the direct children of idx in insertion order.
// The returned slice must not be modified.
func (t *Tree) Children(idx NodeIndex) []NodeIndex {
	if !t.Contains(idx) {
		return nil
	}
	return t.children[idx]
}

// addSize adds n bytes to idx and every ancestor of idx
func (t *Tree) addSize(idx NodeIndex, n uint64) {
	if n == 0 {
		return
	}
	for cur, ok := idx, t.Contains(idx); ok; cur, ok = t.Parent(cur) {
		t.nodes[cur].Size += n
	}
}

func (t *Tree) markIOError(idx NodeIndex) {
	if t.Contains(idx) {
		t.nodes[idx].MetadataIOError = true
	}
}
