// Package runlock keeps two comicsort processes from sorting the same
// download directory at the same time.
package runlock

import (
	"fmt"
	"path/filepath"

	"comicsort/internal/errors"
	"comicsort/internal/log"

	"github.com/gofrs/flock"
)

// FileName is the lock file created inside the download directory. The
// engine never sorts it.
const FileName = ".comicsort.lock"

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("another comicsort instance is already sorting this directory")

// Lock is an exclusive advisory lock on a download directory.
type Lock struct {
	path string
	lock *flock.Flock
}

// Path returns the lock file location for dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Acquire takes the lock for dir without blocking.
func Acquire(dir string) (*Lock, error) {
	path := Path(dir)
	l := &Lock{path: path, lock: flock.New(path)}

	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	log.LogWithFields(log.F("lock", path)).Debug("Acquired run lock")
	return l, nil
}

// Release drops the lock. The lock file stays behind.
func (l *Lock) Release() {
	if err := l.lock.Unlock(); err != nil {
		log.LogWithFields(log.F("lock", l.path)).WithError(err).Warn("Failed to release run lock")
	}
}
