// Package common holds the plain data the model hands to views and
// components. Nothing here refers to the traversal tree, so a Frame can be
// read on the UI goroutine while a scan keeps growing the tree elsewhere.
package common

import "dua/internal/tui/styles"

// Row is one entry of the entries pane, already formatted
type Row struct {
	Name string
	// Size is the formatted size, Bytes the raw one
	Size  string
	Bytes uint64
	// Fraction is Bytes over the size of the displayed directory, in [0, 1]
	Fraction float64
	IsDir    bool
	IOError  bool
	Selected bool
}

// Frame is a full-screen snapshot of one display state
type Frame struct {
	// Path is the filesystem path of the displayed directory; empty at the
	// scan root
	Path      string
	TotalSize string
	Sorting   string
	Rows      []Row
	// Selected is the position of the selected row, -1 if there is none
	Selected int

	Scanning bool
	Entries  uint64
	IOErrors uint64
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Frame() Frame
	Theme() styles.Theme
	Width() int
	Height() int
	StatusLine() string
	HelpView() string
}
