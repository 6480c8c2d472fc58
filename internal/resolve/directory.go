// Package resolve turns a mapping's directory template into a concrete
// destination directory for one file and makes sure it exists.
package resolve

import (
	"os"
	"strings"

	"comicsort/internal/errors"
	"comicsort/internal/log"
	"comicsort/internal/pattern"
	"comicsort/pkg/types"
)

// Path substitutes the filename slice into tmpl without touching the disk.
func Path(tmpl types.DirTemplate, filename string) (string, error) {
	if tmpl.Slice == nil {
		return tmpl.Path, nil
	}
	segment, err := pattern.Cut(*tmpl.Slice, filename)
	if err != nil {
		return "", err
	}
	return strings.Replace(tmpl.Path, tmpl.Placeholder, segment, 1), nil
}

// Directory resolves tmpl for filename and creates the directory tree if it
// is missing. With dryRun set nothing is created. Resolving the same
// template and filename twice yields the same path.
func Directory(tmpl types.DirTemplate, filename string, dryRun bool) (string, error) {
	dir, err := Path(tmpl, filename)
	if err != nil {
		return "", err
	}
	if dryRun {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			log.LogWithFields(log.F("directory", dir)).Info("Directory doesn't exist, would create it")
		}
		return dir, nil
	}
	return dir, Ensure(dir)
}

// Ensure creates dir and its parents. An existing directory is not an error;
// a new one is announced.
func Ensure(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return errors.NewFileError("destination exists and is not a directory", dir, errors.DirectoryCreateFailed, nil)
	case !os.IsNotExist(err):
		return errors.NewFileError("cannot access destination directory", dir, errors.DirectoryCreateFailed, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewFileError("cannot create destination directory", dir, errors.DirectoryCreateFailed, err)
	}
	log.LogWithFields(log.F("directory", dir)).Info("Directory doesn't exist, created it")
	return nil
}
