package types

import (
	"regexp"

	"github.com/gobwas/glob"
)

// DefaultMerger joins the formatted date and the suffix in the date stage.
const DefaultMerger = "-"

// FunctionID names a built-in custom naming function.
type FunctionID string

const (
	// FunctionBloominFaeries numbers strips by date and a running counter
	// found in the destination directory.
	FunctionBloominFaeries FunctionID = "bloomin_faeries"
)

// ArgKind tells the engine what a custom function consumes.
type ArgKind int

const (
	// ArgDir passes the resolved destination directory.
	ArgDir ArgKind = iota
	// ArgFilename passes the raw source filename.
	ArgFilename
)

func (a ArgKind) String() string {
	if a == ArgDir {
		return "dir"
	}
	return "filename"
}

// CustomFunction derives the final filename on its own, bypassing the
// transformation chain.
type CustomFunction struct {
	ID  FunctionID
	Arg ArgKind
	Fn  func(arg string) (string, error)
}

// SelectorKind picks an end of a sorted list of folders.
type SelectorKind string

const (
	SelectFirst SelectorKind = "first"
	SelectLast  SelectorKind = "last"
)

// FolderSelector replaces the resolved directory with the first or last
// existing sub-directory matching Args joined with a trailing "*".
type FolderSelector struct {
	Kind SelectorKind
	Args []string
	Glob glob.Glob
}

// TransformChain holds the optional naming stages applied after extraction.
// Stages run in a fixed order: date split, then substitution.
type TransformChain struct {
	Splitter     string
	Merger       string
	DateFormat   string
	Substitution *regexp.Regexp
	Replacement  string
	ReplaceAll   bool
}

// Mapping is one configured sorting rule. Mappings are built once from
// configuration and never mutated; the first matching mapping wins.
type Mapping struct {
	Title     string
	Source    CompiledPattern
	Directory DirTemplate
	Chain     *TransformChain
	Function  *CustomFunction
	Selector  *FolderSelector
	Copy      bool
}

// Matches reports whether filename belongs to this mapping.
func (m *Mapping) Matches(filename string) bool {
	return m.Source.Match != nil && m.Source.Match.MatchString(filename)
}
