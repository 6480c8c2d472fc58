package organize

import (
	"comicsort/pkg/types"
)

// Organizer defines the interface for file sorting operations
// This allows for dependency injection in tests and other parts of the application
type Organizer interface {
	// SetDryRun sets whether operations should be performed or just simulated
	SetDryRun(dryRun bool)

	// IsDryRun returns the current dry run setting
	IsDryRun() bool

	// Mappings returns the compiled mappings in match order
	Mappings() []types.Mapping

	// Resolve computes the destination of a filename without touching the disk
	Resolve(filename string) (types.ResolvedMove, bool, error)

	// MoveFile carries out a resolved move with collision handling
	MoveFile(move types.ResolvedMove) types.OrganizeResult

	// ProcessAll sorts the given files in order
	ProcessAll(files []types.FileCandidate) []types.OrganizeResult

	// ProcessFile sorts a single file by path
	ProcessFile(path string) (types.OrganizeResult, bool)

	// ProcessDirectory sorts every regular file in a directory
	ProcessDirectory(dir string) ([]types.OrganizeResult, error)
}

// Ensure Engine implements the Organizer interface
var _ Organizer = (*Engine)(nil)
