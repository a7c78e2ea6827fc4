// Package aggregate prints the total size of each input path, like du -s.
package aggregate

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"

	"dua/internal/errors"
	"dua/internal/log"
	"dua/internal/traverse"
	"dua/pkg/types"
)

type line struct {
	path string
	size uint64
}

// Aggregate scans every input and writes one "<size> <path>" line per input
// to w, then a total line if there was more than one. Inputs that cannot be
// scanned are logged and counted as errors; the others are still printed.
func Aggregate(ctx context.Context, w io.Writer, opts types.WalkOptions, input []string) (types.WalkResult, error) {
	if len(input) == 0 {
		input = []string{"."}
	}

	var (
		res   types.WalkResult
		lines []line
		total uint64
	)
	for _, path := range input {
		tr, err := traverse.FromWalk(ctx, opts, []string{path}, nil)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.IsInvalidConfig(err) {
				return res, err
			}
			log.LogWithError(err).Warn("skipping input")
			res.NumErrors++
			continue
		}

		root, _ := tr.Tree.Entry(tr.RootIndex)
		lines = append(lines, line{path: path, size: root.Size})
		total += root.Size
		res.NumErrors += tr.IOErrors
	}

	switch opts.Sorting {
	case types.SortByName:
		slices.SortStableFunc(lines, func(a, b line) int { return cmp.Compare(a.path, b.path) })
	case types.SortBySizeDescending:
		slices.SortStableFunc(lines, func(a, b line) int { return cmp.Compare(b.size, a.size) })
	default:
		slices.SortStableFunc(lines, func(a, b line) int { return cmp.Compare(a.size, b.size) })
	}

	width := 0
	formatted := make([]string, len(lines))
	for i, l := range lines {
		formatted[i] = opts.ByteFormat.Display(l.size)
		width = max(width, len(formatted[i]))
	}
	totalSize := opts.ByteFormat.Display(total)
	if len(input) > 1 {
		width = max(width, len(totalSize))
	}

	for i, l := range lines {
		if _, err := fmt.Fprintf(w, "%*s %s\n", width, formatted[i], l.path); err != nil {
			return res, errors.Wrap(err, "cannot write output")
		}
	}
	if len(input) > 1 {
		if _, err := fmt.Fprintf(w, "%*s total\n", width, totalSize); err != nil {
			return res, errors.Wrap(err, "cannot write output")
		}
	}
	return res, nil
}
