// Package transform derives destination filenames. A name is seeded by
// searching the source filename with the mapping's name pattern and then
// passed through the optional stages of a TransformChain: the date split and
// the regex substitution. Mappings that name a custom function skip the chain
// entirely.
package transform

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"comicsort/internal/errors"
	"comicsort/internal/pattern"
	"comicsort/pkg/types"
)

// DeriveName computes the destination filename for filename.
func DeriveName(filename string, name types.CompiledPattern, chain *types.TransformChain) (string, error) {
	result, err := pattern.Extract(name, filename)
	if err != nil {
		return "", err
	}
	if chain == nil {
		return result, nil
	}

	if chain.Splitter != "" {
		result, err = SplitDate(result, chain.Splitter, chain.DateFormat, chain.Merger)
		if err != nil {
			return "", err
		}
	}
	if chain.Substitution != nil {
		result = Substitute(result, chain)
	}
	return result, nil
}

// SplitDate splits name into an epoch timestamp and a suffix, formats the
// timestamp as a UTC date and joins the two with merger.
func SplitDate(name, splitter, format, merger string) (string, error) {
	parts := strings.Split(name, splitter)
	if len(parts) != 2 {
		return "", errors.NewKind(errors.SplitMismatch,
			"splitting %q on %q gave %d parts, want 2", name, splitter, len(parts))
	}

	stamp, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return "", errors.NewKind(errors.InvalidTimestamp, "timestamp %q in %q is not an integer", parts[0], name)
	}

	if merger == "" {
		merger = types.DefaultMerger
	}
	date := FormatDate(time.Unix(stamp, 0).UTC(), format)
	return date + merger + parts[1], nil
}

// Substitute applies the chain's substitution pattern to name. Only the first
// match is replaced unless ReplaceAll is set. Replacements may reference
// groups as $1 or ${name}. A pattern that does not match leaves name as is.
func Substitute(name string, chain *types.TransformChain) string {
	re := chain.Substitution
	if chain.ReplaceAll {
		return re.ReplaceAllString(name, chain.Replacement)
	}

	loc := re.FindStringSubmatchIndex(name)
	if loc == nil {
		return name
	}
	expanded := re.ExpandString(nil, chain.Replacement, name, loc)
	return name[:loc[0]] + string(expanded) + name[loc[1]:]
}

// CheckName rejects a derived name that is not a single path element: an
// empty name, "." or "..", or one containing a path separator.
func CheckName(name string) error {
	switch {
	case name == "" || name == "." || name == "..":
		return errors.NewKind(errors.PatternMismatch, "derived name %q is not a filename", name)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return errors.NewKind(errors.PatternMismatch, "derived name %q contains a path separator", name)
	}
	return nil
}
