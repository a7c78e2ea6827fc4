package types

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// DefaultProgressInterval is how often a running scan asks for a redraw.
const DefaultProgressInterval = 250 * time.Millisecond

// ByteFormat selects how sizes are printed.
type ByteFormat int

const (
	// Metric uses powers of 1000 (kB, MB, ...)
	Metric ByteFormat = iota
	// Binary uses powers of 1024 (KiB, MiB, ...)
	Binary
	// Bytes prints the plain byte count
	Bytes
)

// Display renders a size according to the format.
func (f ByteFormat) Display(size uint64) string {
	switch f {
	case Binary:
		return humanize.IBytes(size)
	case Bytes:
		return humanize.Comma(int64(size)) + " B"
	default:
		return humanize.Bytes(size)
	}
}

func (f ByteFormat) String() string {
	switch f {
	case Binary:
		return "binary"
	case Bytes:
		return "bytes"
	default:
		return "metric"
	}
}

// ParseByteFormat parses the config/flag spelling of a byte format.
func ParseByteFormat(s string) (ByteFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "metric":
		return Metric, nil
	case "binary":
		return Binary, nil
	case "bytes":
		return Bytes, nil
	}
	return Metric, fmt.Errorf("unknown byte format %q (want metric, binary or bytes)", s)
}

// Color decides whether output is styled.
type Color int

const (
	// NoColor renders plain text
	NoColor Color = iota
	// Terminal uses whatever the terminal supports
	Terminal
)

func (c Color) String() string {
	if c == Terminal {
		return "terminal"
	}
	return "none"
}

// ParseColor parses a color mode. "auto" resolves to Terminal when isTerminal
// is true and NoColor otherwise.
func ParseColor(s string, isTerminal bool) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		if isTerminal {
			return Terminal, nil
		}
		return NoColor, nil
	case "none", "never":
		return NoColor, nil
	case "terminal", "always":
		return Terminal, nil
	}
	return NoColor, fmt.Errorf("unknown color mode %q (want auto, none or terminal)", s)
}

// SortMode orders the children of a directory.
type SortMode int

const (
	// SortByName orders entries bytewise by name
	SortByName SortMode = iota
	// SortBySizeAscending puts the smallest entries first
	SortBySizeAscending
	// SortBySizeDescending puts the largest entries first
	SortBySizeDescending
)

// Toggle switches to size ordering, or flips its direction when already
// sorting by size.
func (s SortMode) Toggle() SortMode {
	switch s {
	case SortBySizeAscending:
		return SortBySizeDescending
	default:
		return SortBySizeAscending
	}
}

func (s SortMode) String() string {
	switch s {
	case SortBySizeAscending:
		return "size_ascending"
	case SortBySizeDescending:
		return "size_descending"
	default:
		return "name"
	}
}

// Label is the short human description used in headers.
func (s SortMode) Label() string {
	switch s {
	case SortBySizeAscending:
		return "size ↑"
	case SortBySizeDescending:
		return "size ↓"
	default:
		return "name"
	}
}

// ParseSortMode parses the config/flag spelling of a sort mode.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name", "alphabetical":
		return SortByName, nil
	case "size", "size_ascending", "size-ascending":
		return SortBySizeAscending, nil
	case "size_descending", "size-descending":
		return SortBySizeDescending, nil
	}
	return SortByName, fmt.Errorf("unknown sort mode %q (want name, size_ascending or size_descending)", s)
}

// WalkOptions configures a scan and how its results are displayed.
type WalkOptions struct {
	Threads          int
	ByteFormat       ByteFormat
	Color            Color
	Sorting          SortMode
	Ignore           []string
	ProgressInterval time.Duration
}

// DefaultWalkOptions returns the options used when nothing is configured.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		ByteFormat:       Metric,
		Color:            NoColor,
		Sorting:          SortByName,
		ProgressInterval: DefaultProgressInterval,
	}
}

// WorkerCount resolves Threads, where 0 means one worker per CPU.
func (o WalkOptions) WorkerCount() int {
	if o.Threads <= 0 {
		return runtime.NumCPU()
	}
	return o.Threads
}

// WalkResult is what a finished scan or session reports to the caller.
type WalkResult struct {
	// NumErrors counts entries that could not be read or stat'ed
	NumErrors uint64
}
