package types

import "regexp"

// Slice selects Length runes of a filename starting at rune offset Start.
// It is parsed from a "<start:length>" placeholder in a directory template.
type Slice struct {
	Start  int `yaml:"start"`
	Length int `yaml:"length"`
}

// CompiledPattern is a source or name template with its optional
// "<...>" placeholder resolved.
type CompiledPattern struct {
	Template       string // Raw template as configured.
	Matching       string // Template with the angle brackets stripped.
	Body           string // Text between the brackets, or Template when there is no placeholder.
	HasPlaceholder bool

	// Match is Matching anchored at the start of the filename.
	Match *regexp.Regexp
	// Extract is Body wrapped in a named capture group and compiled for
	// an unanchored search.
	Extract *regexp.Regexp
}

// DirTemplate is a destination directory that may embed one
// "<start:length>" slice of the filename.
type DirTemplate struct {
	Path        string // Root joined with the configured directory segments.
	Placeholder string // Literal placeholder text including brackets, empty if none.
	Slice       *Slice
}
