package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"comicsort/internal/organize"
	"comicsort/internal/pattern"
	"comicsort/internal/watch"
	"comicsort/pkg/testutils"
	"comicsort/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSorter(t *testing.T, l testutils.Layout) *organize.Engine {
	t.Helper()
	source, err := pattern.Compile(`comic_\d+\.jpg`)
	require.NoError(t, err)
	dir, err := pattern.CompileDir(filepath.Join(l.Root, "Comics"))
	require.NoError(t, err)
	return organize.New([]types.Mapping{{Title: "Example", Source: source, Directory: dir}})
}

func TestDaemonSortsExistingThenNewFiles(t *testing.T) {
	l := testutils.NewLayout(t)
	testutils.CreateTestFiles(t, l.Download, "comic_1.jpg", "notes.txt")

	d := watch.NewDaemon(newSorter(t, l), l.Download)

	batches := make(chan []types.OrganizeResult, 4)
	d.SetCallback(func(results []types.OrganizeResult) { batches <- results })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	select {
	case first := <-batches:
		require.Len(t, first, 1, "only the matching file is reported")
		assert.Equal(t, "Example", first[0].Mapping)
	case <-ctx.Done():
		t.Fatal("first pass never reported")
	}
	assert.FileExists(t, filepath.Join(l.Root, "Comics", "comic_1.jpg"))
	assert.True(t, d.Status().Running)

	require.NoError(t, os.WriteFile(filepath.Join(l.Download, "comic_2.jpg"), []byte("strip"), 0o644))

	select {
	case next := <-batches:
		require.Len(t, next, 1)
		assert.NoError(t, next[0].Error)
	case <-ctx.Done():
		t.Fatal("new file was never sorted")
	}
	assert.FileExists(t, filepath.Join(l.Root, "Comics", "comic_2.jpg"))
	assert.FileExists(t, filepath.Join(l.Download, "notes.txt"))

	cancel()
	require.NoError(t, <-done)

	status := d.Status()
	assert.False(t, status.Running)
	assert.Equal(t, l.Download, status.Directory)
	assert.Equal(t, 2, status.FilesProcessed)
	assert.Zero(t, status.FilesFailed)
	assert.False(t, status.LastActivity.IsZero())
}

func TestDaemonRunRejectsMissingDirectory(t *testing.T) {
	l := testutils.NewLayout(t)
	d := watch.NewDaemon(newSorter(t, l), filepath.Join(l.Base, "missing"))

	assert.Error(t, d.Run(context.Background()))
	assert.False(t, d.Status().Running)
}
