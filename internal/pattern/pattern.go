// Package pattern compiles mapping templates. A template is a regular
// expression that may wrap one part of itself in angle brackets:
//
//	comic_<\d+>\.jpg
//
// The brackets are stripped to form the pattern a filename must match, and
// the text between them (the placeholder body) is kept separately. In name
// templates the body is searched for inside the filename to seed the new
// name; in directory templates it is a "start:length" slice of the filename.
package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"comicsort/internal/errors"
	"comicsort/pkg/types"
)

// CaptureName is the name of the group holding the extracted text.
const CaptureName = "name"

var placeholderRe = regexp.MustCompile(`<([^<>]*)>`)

// Compile parses a source template into its matching and extraction forms.
// Templates may contain at most one placeholder.
func Compile(template string) (types.CompiledPattern, error) {
	cp := types.CompiledPattern{
		Template: template,
		Matching: template,
		Body:     template,
	}

	loc, err := findPlaceholder(template)
	if err != nil {
		return cp, err
	}
	if loc != nil {
		cp.Body = template[loc[2]:loc[3]]
		cp.Matching = template[:loc[0]] + cp.Body + template[loc[1]:]
		cp.HasPlaceholder = true
		if cp.Body == "" {
			return cp, errors.NewConfigError("empty placeholder in template", template, errors.InvalidConfig, nil)
		}
	}
	if template == "" {
		return cp, errors.NewConfigError("empty template", "pattern", errors.InvalidConfig, nil)
	}

	cp.Match, err = regexp.Compile("^(?:" + cp.Matching + ")")
	if err != nil {
		return cp, errors.NewConfigError("invalid pattern", template, errors.InvalidConfig, err)
	}
	cp.Extract, err = regexp.Compile("(?P<" + CaptureName + ">" + cp.Body + ")")
	if err != nil {
		return cp, errors.NewConfigError("invalid placeholder pattern", cp.Body, errors.InvalidConfig, err)
	}
	return cp, nil
}

// CompileDir parses a directory template. A placeholder, if present, must be
// a "start:length" slice.
func CompileDir(path string) (types.DirTemplate, error) {
	dt := types.DirTemplate{Path: path}

	loc, err := findPlaceholder(path)
	if err != nil || loc == nil {
		return dt, err
	}

	s, err := ParseSlice(path[loc[2]:loc[3]])
	if err != nil {
		return dt, errors.NewConfigError("invalid directory placeholder", path, errors.InvalidConfig, err)
	}
	dt.Placeholder = path[loc[0]:loc[1]]
	dt.Slice = &s
	return dt, nil
}

// ParseSlice parses "start:length". Both parts must be non-negative integers
// and length must be positive.
func ParseSlice(body string) (types.Slice, error) {
	parts := strings.Split(body, ":")
	if len(parts) != 2 {
		return types.Slice{}, fmt.Errorf("slice %q: want start:length", body)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil || start < 0 {
		return types.Slice{}, fmt.Errorf("slice %q: start must be a non-negative integer", body)
	}
	length, err := strconv.Atoi(parts[1])
	if err != nil || length < 1 {
		return types.Slice{}, fmt.Errorf("slice %q: length must be a positive integer", body)
	}
	return types.Slice{Start: start, Length: length}, nil
}

// Extract searches filename with the compiled name pattern and returns the
// first match.
func Extract(cp types.CompiledPattern, filename string) (string, error) {
	if cp.Extract == nil {
		return "", errors.NewKind(errors.PatternMismatch, "pattern %q was never compiled", cp.Template)
	}
	m := cp.Extract.FindStringSubmatch(filename)
	if m == nil {
		return "", errors.NewKind(errors.PatternMismatch, "no match for %q in %q", cp.Body, filename)
	}
	return m[cp.Extract.SubexpIndex(CaptureName)], nil
}

// Cut returns the runes of filename selected by s.
func Cut(s types.Slice, filename string) (string, error) {
	runes := []rune(filename)
	if s.Start > len(runes) || s.Length > len(runes)-s.Start {
		return "", errors.NewKind(errors.PatternMismatch,
			"slice %d:%d is outside %q (%d characters)", s.Start, s.Length, filename, len(runes))
	}
	return string(runes[s.Start : s.Start+s.Length]), nil
}

// findPlaceholder returns the submatch index of the only placeholder in
// template, nil if there is none, or an error if there are several. The
// names of regex groups, (?P<name>...) and (?<name>...), are not
// placeholders.
func findPlaceholder(template string) ([]int, error) {
	var locs [][]int
	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(template, -1) {
		prefix := template[:loc[0]]
		if strings.HasSuffix(prefix, "(?P") || strings.HasSuffix(prefix, "(?") {
			continue
		}
		locs = append(locs, loc)
	}
	switch len(locs) {
	case 0:
		return nil, nil
	case 1:
		return locs[0], nil
	default:
		return nil, errors.NewConfigError(
			fmt.Sprintf("template has %d placeholders, at most one is allowed", len(locs)),
			template, errors.InvalidConfig, nil)
	}
}
