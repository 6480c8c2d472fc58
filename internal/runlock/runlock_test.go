package runlock_test

import (
	"testing"

	"comicsort/internal/runlock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireIsExclusive(t *testing.T) {
	dir := t.TempDir()

	first, err := runlock.Acquire(dir)
	require.NoError(t, err)
	assert.FileExists(t, runlock.Path(dir))

	_, err = runlock.Acquire(dir)
	assert.ErrorIs(t, err, runlock.ErrLocked)

	first.Release()

	again, err := runlock.Acquire(dir)
	require.NoError(t, err)
	again.Release()
}

func TestAcquireMissingDirectory(t *testing.T) {
	_, err := runlock.Acquire(t.TempDir() + "/missing")
	assert.Error(t, err)
}
