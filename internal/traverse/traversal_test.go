package traverse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dua/internal/errors"
	"dua/pkg/types"
)

// createSampleTree lays out the sample-01 fixture and returns its path.
func createSampleTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "sample-01")

	files := map[string]int{
		".hidden.666":             666,
		"a":                       256,
		"b.empty":                 0,
		"dir/1000bytes":           1000,
		"dir/dir-a.1mb":           1_000_000,
		"dir/dir-a.kb":            1024,
		"dir/empty-dir/.gitkeep":  0,
		"dir/sub/dir-sub-a.256kb": 256_000,
	}
	for name, size := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	}
	require.NoError(t, os.Symlink("a", filepath.Join(root, "c.lnk")))
	return root
}

func childByName(t *testing.T, tree *Tree, parent NodeIndex, name string) NodeIndex {
	t.Helper()
	for _, c := range tree.Children(parent) {
		if e, _ := tree.Entry(c); e.Name == name {
			return c
		}
	}
	t.Fatalf("no child %q", name)
	return noParent
}

func TestFromWalk(t *testing.T) {
	sample := createSampleTree(t)

	for _, threads := range []int{1, 4} {
		t.Run(fmt.Sprintf("threads=%d", threads), func(t *testing.T) {
			opts := types.DefaultWalkOptions()
			opts.Threads = threads

			tr, err := FromWalk(context.Background(), opts, []string{sample}, nil)
			require.NoError(t, err)

			tree := tr.Tree
			root, ok := tree.Entry(tr.RootIndex)
			require.True(t, ok)
			assert.Equal(t, "", root.Name)
			assert.Equal(t, uint64(13), tr.Entries)
			assert.Equal(t, 14, tree.Len())
			assert.Zero(t, tr.IOErrors)

			top := childByName(t, tree, tr.RootIndex, "sample-01")
			dir := childByName(t, tree, top, "dir")
			sub := childByName(t, tree, dir, "sub")
			link := childByName(t, tree, top, "c.lnk")

			sizeOf := func(idx NodeIndex) uint64 {
				e, _ := tree.Entry(idx)
				return e.Size
			}
			assert.Equal(t, uint64(256_000), sizeOf(sub))
			assert.Equal(t, uint64(1_258_024), sizeOf(dir))
			assert.Equal(t, uint64(1), sizeOf(link), "symlinks are not followed")
			assert.Equal(t, uint64(1_258_947), sizeOf(top))
			assert.Equal(t, sizeOf(top), sizeOf(tr.RootIndex))

			parent, ok := tree.Parent(sub)
			require.True(t, ok)
			assert.Equal(t, dir, parent)
		})
	}
}

func TestFromWalkInputs(t *testing.T) {
	t.Run("missing input is a scan error", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")
		_, err := FromWalk(context.Background(), types.DefaultWalkOptions(), []string{missing}, nil)
		require.Error(t, err)
		assert.True(t, errors.IsScanError(err))
		assert.True(t, errors.IsFileNotFound(err))

		var scanErr *errors.ScanError
		require.True(t, errors.As(err, &scanErr))
		assert.Equal(t, missing, scanErr.Path())
	})

	t.Run("file input", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "single.bin")
		require.NoError(t, os.WriteFile(path, make([]byte, 42), 0644))

		tr, err := FromWalk(context.Background(), types.DefaultWalkOptions(), []string{path}, nil)
		require.NoError(t, err)
		idx := childByName(t, tr.Tree, tr.RootIndex, "single.bin")
		e, _ := tr.Tree.Entry(idx)
		assert.Equal(t, uint64(42), e.Size)
		assert.Empty(t, tr.Tree.Children(idx))
	})

	t.Run("multiple inputs", func(t *testing.T) {
		a := createSampleTree(t)
		b := filepath.Join(t.TempDir(), "other")
		require.NoError(t, os.Mkdir(b, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(b, "x"), make([]byte, 3), 0644))

		tr, err := FromWalk(context.Background(), types.DefaultWalkOptions(), []string{a, b}, nil)
		require.NoError(t, err)
		assert.Len(t, tr.Tree.Children(tr.RootIndex), 2)
		root, _ := tr.Tree.Entry(tr.RootIndex)
		assert.Equal(t, uint64(1_258_947+3), root.Size)
	})
}

func TestFromWalkIgnore(t *testing.T) {
	sample := createSampleTree(t)
	opts := types.DefaultWalkOptions()
	opts.Ignore = []string{"empty-dir", "**/sub/*.256kb"}

	tr, err := FromWalk(context.Background(), opts, []string{sample}, nil)
	require.NoError(t, err)

	top := childByName(t, tr.Tree, tr.RootIndex, "sample-01")
	dir := childByName(t, tr.Tree, top, "dir")
	for _, c := range tr.Tree.Children(dir) {
		e, _ := tr.Tree.Entry(c)
		assert.NotEqual(t, "empty-dir", e.Name)
	}
	sub := childByName(t, tr.Tree, dir, "sub")
	assert.Empty(t, tr.Tree.Children(sub))

	t.Run("invalid pattern", func(t *testing.T) {
		opts := types.DefaultWalkOptions()
		opts.Ignore = []string{"[unclosed"}
		_, err := FromWalk(context.Background(), opts, []string{sample}, nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})
}

func TestFromWalkUnreadableDirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("Skipping test when running as root")
	}

	sample := createSampleTree(t)
	locked := filepath.Join(sample, "dir", "sub")
	require.NoError(t, os.Chmod(locked, 0000))
	defer os.Chmod(locked, 0755)

	tr, err := FromWalk(context.Background(), types.DefaultWalkOptions(), []string{sample}, nil)
	require.NoError(t, err, "unreadable directories are counted, not fatal")
	assert.Equal(t, uint64(1), tr.IOErrors)

	top := childByName(t, tr.Tree, tr.RootIndex, "sample-01")
	sub := childByName(t, tr.Tree, childByName(t, tr.Tree, top, "dir"), "sub")
	e, _ := tr.Tree.Entry(sub)
	assert.True(t, e.MetadataIOError)
}

func TestReadDir(t *testing.T) {
	matcher, err := NewMatcher(nil)
	require.NoError(t, err)

	t.Run("missing directory", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "gone")
		res := readDir(dirJob{path: missing}, matcher)
		require.Error(t, res.err)
		assert.Empty(t, res.entries)
		assert.True(t, errors.IsFileNotFound(res.err))

		var fileErr *errors.FileError
		require.True(t, errors.As(res.err, &fileErr))
		assert.Equal(t, missing, fileErr.Path())
	})

	t.Run("permission denied", func(t *testing.T) {
		if os.Getuid() == 0 {
			t.Skip("Skipping test when running as root")
		}
		locked := filepath.Join(t.TempDir(), "locked")
		require.NoError(t, os.Mkdir(locked, 0000))
		defer os.Chmod(locked, 0755)

		res := readDir(dirJob{path: locked}, matcher)
		var fileErr *errors.FileError
		require.True(t, errors.As(res.err, &fileErr))
		assert.Equal(t, errors.FileAccessDenied, fileErr.Kind())
	})

	t.Run("readable directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), make([]byte, 5), 0644))
		res := readDir(dirJob{path: dir}, matcher)
		require.NoError(t, res.err)
		require.Len(t, res.entries, 1)
		assert.Equal(t, uint64(5), res.entries[0].size)
	})
}

func TestTraversalPath(t *testing.T) {
	sample := createSampleTree(t)
	tr, err := FromWalk(context.Background(), types.DefaultWalkOptions(), []string{sample}, nil)
	require.NoError(t, err)

	top := childByName(t, tr.Tree, tr.RootIndex, "sample-01")
	sub := childByName(t, tr.Tree, childByName(t, tr.Tree, top, "dir"), "sub")

	assert.Equal(t, sample, tr.Path(top))
	assert.Equal(t, filepath.Join(sample, "dir", "sub"), tr.Path(sub))
	assert.Equal(t, "", tr.Path(tr.RootIndex))
}

func TestCoordinate(t *testing.T) {
	newTraversal := func() (*Traversal, []dirJob) {
		tr := &Traversal{Tree: NewTree()}
		tr.RootIndex = tr.Tree.AddNode(EntryData{})
		dir := tr.Tree.AddChild(tr.RootIndex, EntryData{Name: "d"})
		return tr, []dirJob{{idx: dir, path: "d"}}
	}

	t.Run("failing update aborts", func(t *testing.T) {
		tr, pending := newTraversal()
		tick := make(chan time.Time, 1)
		tick <- time.Now()
		updateErr := errors.NewRenderError("draw failed", errors.RenderFailed, nil)

		calls := 0
		err := tr.coordinate(context.Background(), make(chan dirJob), make(chan dirResult), pending, tick,
			func(got *Traversal) error {
				calls++
				assert.Same(t, tr, got)
				return updateErr
			})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.True(t, errors.IsScanError(err))
		assert.True(t, errors.IsRenderError(err), "the redraw failure is surfaced")
	})

	t.Run("canceled context", func(t *testing.T) {
		tr, pending := newTraversal()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := tr.coordinate(ctx, make(chan dirJob), make(chan dirResult), pending, nil, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("results grow the tree", func(t *testing.T) {
		tr, pending := newTraversal()
		jobs := make(chan dirJob)
		results := make(chan dirResult)
		go func() {
			job := <-jobs
			results <- dirResult{job: job, entries: []walkedEntry{
				{name: "f", size: 7},
				{name: "bad", ioErr: true},
			}}
		}()

		err := tr.coordinate(context.Background(), jobs, results, pending, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), tr.Entries)
		assert.Equal(t, uint64(1), tr.IOErrors)
		root, _ := tr.Tree.Entry(tr.RootIndex)
		assert.Equal(t, uint64(7), root.Size)
	})
}
