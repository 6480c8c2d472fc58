package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"comicsort/internal/log"
	"comicsort/pkg/types"
)

// Sorter is the part of the organize engine the daemon drives.
type Sorter interface {
	ProcessDirectory(dir string) ([]types.OrganizeResult, error)
	ProcessFile(path string) (types.OrganizeResult, bool)
}

// DaemonStatus represents the current status of the daemon
type DaemonStatus struct {
	Running        bool      // Whether the daemon is currently watching
	Directory      string    // Directory being watched
	LastActivity   time.Time // Time the last file was handled
	FilesProcessed int       // Files sorted without error
	FilesFailed    int       // Files whose mapping failed
}

// Daemon sorts a directory once and then keeps sorting files as they
// appear in it.
type Daemon struct {
	sorter    Sorter
	directory string

	// Called with the results of the first pass and of every later file
	callback func([]types.OrganizeResult)

	mutex        sync.RWMutex
	running      bool
	processed    int
	failed       int
	lastActivity time.Time
}

// NewDaemon creates a daemon that feeds files in dir to sorter.
func NewDaemon(sorter Sorter, dir string) *Daemon {
	return &Daemon{
		sorter:    sorter,
		directory: dir,
	}
}

// SetCallback sets a function to be called with each batch of results
func (d *Daemon) SetCallback(cb func([]types.OrganizeResult)) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = cb
}

// Run sorts the directory, then watches it until ctx is cancelled. The
// watch is set up before the first pass so files arriving during it are
// not missed.
func (d *Daemon) Run(ctx context.Context) error {
	d.mutex.Lock()
	if d.running {
		d.mutex.Unlock()
		return fmt.Errorf("daemon is already running")
	}
	d.running = true
	d.mutex.Unlock()

	defer func() {
		d.mutex.Lock()
		d.running = false
		d.mutex.Unlock()
	}()

	w, err := New(d.directory)
	if err != nil {
		return err
	}

	results, err := d.sorter.ProcessDirectory(d.directory)
	if err != nil {
		_ = w.Close()
		return err
	}
	d.record(results)

	log.LogWithFields(log.F("directory", d.directory)).Info("Waiting for new files, press Ctrl+C to stop")
	err = w.Run(ctx, func(path string) {
		if result, ok := d.sorter.ProcessFile(path); ok {
			d.record([]types.OrganizeResult{result})
		}
	})

	status := d.Status()
	log.LogWithFields(
		log.F("processed", status.FilesProcessed),
		log.F("failed", status.FilesFailed),
	).Info("Stopped watching")
	return err
}

// record updates the statistics and hands results to the callback.
func (d *Daemon) record(results []types.OrganizeResult) {
	d.mutex.Lock()
	for _, r := range results {
		switch {
		case r.Error != nil:
			d.failed++
		case !r.Skipped:
			d.processed++
		}
	}
	if len(results) > 0 {
		d.lastActivity = time.Now()
	}
	cb := d.callback
	d.mutex.Unlock()

	if cb != nil {
		cb(results)
	}
}

// Status returns the current status of the daemon
func (d *Daemon) Status() DaemonStatus {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	return DaemonStatus{
		Running:        d.running,
		Directory:      d.directory,
		LastActivity:   d.lastActivity,
		FilesProcessed: d.processed,
		FilesFailed:    d.failed,
	}
}
