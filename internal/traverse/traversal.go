// Package traverse walks input paths into an arena tree of entries with
// aggregated sizes, reporting progress while it goes.
package traverse

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"dua/internal/errors"
	"dua/internal/log"
	"dua/pkg/types"
)

// Traversal is a (possibly still growing) scan of one or more input paths.
// RootIndex is a synthetic nameless node whose children are the inputs.
type Traversal struct {
	Tree      *Tree
	RootIndex NodeIndex
	// IOErrors counts entries that could not be stat'ed or read
	IOErrors uint64
	// Entries counts every node added below the root
	Entries uint64
	Elapsed time.Duration

	inputs map[NodeIndex]string
}

// UpdateFunc is called from the scanning goroutine whenever a redraw is due.
// The tree is consistent for the duration of the call. A non-nil error
// aborts the scan.
type UpdateFunc func(t *Traversal) error

type dirJob struct {
	idx  NodeIndex
	path string
}

type walkedEntry struct {
	name  string
	size  uint64
	isDir bool
	ioErr bool
}

type dirResult struct {
	job     dirJob
	entries []walkedEntry
	err     error
}

// FromWalk scans input (the current directory if empty) with
// opts.WorkerCount() directory readers. Only the calling goroutine mutates the
// tree and calls update, every opts.ProgressInterval.
func FromWalk(ctx context.Context, opts types.WalkOptions, input []string, update UpdateFunc) (*Traversal, error) {
	start := time.Now()
	matcher, err := NewMatcher(opts.Ignore)
	if err != nil {
		return nil, err
	}
	if len(input) == 0 {
		input = []string{"."}
	}

	logger := log.LogWithFields(log.F("inputs", input), log.F("threads", opts.WorkerCount()))
	logger.Debug("starting scan")

	t := &Traversal{Tree: NewTree(), inputs: make(map[NodeIndex]string, len(input))}
	t.RootIndex = t.Tree.AddNode(EntryData{})

	var dirs []dirJob
	for _, path := range input {
		info, err := os.Lstat(path)
		if err != nil {
			return nil, errors.NewScanError("cannot read input path", path, pathKind(err), err)
		}

		idx := t.Tree.AddChild(t.RootIndex, EntryData{Name: filepath.Base(path), IsDir: info.IsDir()})
		t.inputs[idx] = path
		t.Entries++
		if info.IsDir() {
			dirs = append(dirs, dirJob{idx: idx, path: path})
		} else {
			t.Tree.addSize(idx, uint64(info.Size()))
		}
	}

	if err := t.walk(ctx, opts, matcher, dirs, update); err != nil {
		logger.With(log.F("error", err.Error())).Warn("scan aborted")
		return nil, err
	}

	t.Elapsed = time.Since(start)
	logger.With(
		log.F("entries", t.Entries),
		log.F("io_errors", t.IOErrors),
		log.F("elapsed", t.Elapsed.String()),
	).Debug("scan complete")
	return t, nil
}

// Path returns the filesystem path of idx, starting with the input path
// exactly as it was given.
func (t *Traversal) Path(idx NodeIndex) string {
	var names []string
	for cur, ok := idx, t.Tree.Contains(idx); ok; cur, ok = t.Tree.Parent(cur) {
		if input, isInput := t.inputs[cur]; isInput {
			names = append(names, input)
			break
		}
		if e, _ := t.Tree.Entry(cur); e.Name != "" {
			names = append(names, e.Name)
		}
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return filepath.Join(names...)
}

func (t *Traversal) walk(ctx context.Context, opts types.WalkOptions, matcher *Matcher, pending []dirJob, update UpdateFunc) error {
	if len(pending) == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	jobs := make(chan dirJob)
	results := make(chan dirResult)
	for i := 0; i < opts.WorkerCount(); i++ {
		g.Go(func() error {
			for job := range jobs {
				res := readDir(job, matcher)
				select {
				case results <- res:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = types.DefaultProgressInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	err := t.coordinate(gctx, jobs, results, pending, ticker.C, update)
	if err != nil {
		cancel()
	}
	close(jobs)
	if werr := g.Wait(); err == nil && werr != nil {
		err = errors.NewScanError("scan canceled", "", errors.ScanCanceled, werr)
	}
	return err
}

// coordinate hands out directories and folds results into the tree until no
// work is left. It is the only place the tree is written.
func (t *Traversal) coordinate(ctx context.Context, jobs chan<- dirJob, results <-chan dirResult,
	pending []dirJob, tick <-chan time.Time, update UpdateFunc) error {
	inflight := 0
	for len(pending) > 0 || inflight > 0 {
		var send chan<- dirJob
		var next dirJob
		if len(pending) > 0 {
			send = jobs
			next = pending[len(pending)-1]
		}

		select {
		case send <- next:
			pending = pending[:len(pending)-1]
			inflight++
		case res := <-results:
			inflight--
			pending = t.apply(res, pending)
		case <-tick:
			if update == nil {
				continue
			}
			if err := update(t); err != nil {
				return errors.NewScanError("scan aborted by progress update", "", errors.ScanFailed, err)
			}
		case <-ctx.Done():
			return errors.NewScanError("scan canceled", "", errors.ScanCanceled, ctx.Err())
		}
	}
	return nil
}

func (t *Traversal) apply(res dirResult, pending []dirJob) []dirJob {
	if res.err != nil {
		t.IOErrors++
		t.Tree.markIOError(res.job.idx)
		log.LogWithError(res.err).Debug("counting unreadable directory")
	}

	for _, e := range res.entries {
		idx := t.Tree.AddChild(res.job.idx, EntryData{Name: e.name, IsDir: e.isDir, MetadataIOError: e.ioErr})
		t.Entries++
		switch {
		case e.ioErr:
			t.IOErrors++
		case e.isDir:
			pending = append(pending, dirJob{idx: idx, path: filepath.Join(res.job.path, e.name)})
		default:
			t.Tree.addSize(idx, e.size)
		}
	}
	return pending
}

// readDir lists one directory without following symlinks. Entries that
// cannot be stat'ed are kept and flagged.
func readDir(job dirJob, matcher *Matcher) dirResult {
	des, err := os.ReadDir(job.path)
	res := dirResult{job: job}
	if err != nil {
		res.err = pathError("cannot read directory", job.path, err)
	}
	for _, de := range des {
		if matcher.Match(filepath.Join(job.path, de.Name())) {
			continue
		}
		e := walkedEntry{name: de.Name(), isDir: de.IsDir()}
		if info, err := de.Info(); err != nil {
			e.ioErr = true
		} else if !e.isDir {
			e.size = uint64(info.Size())
		}
		res.entries = append(res.entries, e)
	}
	return res
}

func pathKind(err error) errors.ErrorKind {
	switch {
	case os.IsNotExist(err):
		return errors.FileNotFound
	case os.IsPermission(err):
		return errors.FileAccessDenied
	}
	return errors.InvalidPath
}

// pathError ties a filesystem failure to the path it happened on
func pathError(msg, path string, err error) *errors.FileError {
	return errors.NewFileError(msg, path, pathKind(err), err)
}
