package types

// ResolvedMove is the source and destination computed for one matched file.
type ResolvedMove struct {
	SourcePath      string `json:"source_path"`
	DestinationPath string `json:"destination_path"`
	Mapping         string `json:"mapping"`
	Copy            bool   `json:"copy,omitempty"`
}

// OrganizeResult holds the outcome of an organization attempt for a single file
type OrganizeResult struct {
	ResolvedMove
	Moved   bool  `json:"moved"`
	Skipped bool  `json:"skipped,omitempty"`
	Error   error `json:"-"`
}
