package types

import "path/filepath"

// FileCandidate is a file found in the download directory.
type FileCandidate struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// NewFileCandidate builds a candidate from a full path.
func NewFileCandidate(path string) FileCandidate {
	return FileCandidate{Name: filepath.Base(path), Path: path}
}
