package resolve

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"comicsort/internal/errors"
	"comicsort/pkg/types"

	"github.com/gobwas/glob"
)

// CompileSelector checks a folder selector and compiles its glob.
func CompileSelector(kind string, args []string) (*types.FolderSelector, error) {
	sk := types.SelectorKind(strings.ToLower(kind))
	if sk != types.SelectFirst && sk != types.SelectLast {
		return nil, fmt.Errorf("unknown selector %q, want first or last", kind)
	}
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, `/\`) {
			return nil, fmt.Errorf("selector argument %q must be a single path segment", a)
		}
	}
	g, err := glob.Compile(selectorPattern(args), '/')
	if err != nil {
		return nil, fmt.Errorf("selector glob: %w", err)
	}
	return &types.FolderSelector{Kind: sk, Args: args, Glob: g}, nil
}

func selectorPattern(args []string) string {
	return strings.Join(append(append([]string{}, args...), "*"), "/")
}

// SelectFolder returns the first or last (in lexical order) directory below
// base whose relative path matches the selector's glob.
func SelectFolder(base string, sel *types.FolderSelector) (string, error) {
	depth := len(sel.Args) + 1
	var found []string

	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == base {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		level := strings.Count(rel, "/") + 1
		if level == depth && sel.Glob.Match(rel) {
			found = append(found, path)
		}
		if level >= depth {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return "", errors.NewFileError("cannot scan for folders", base, errors.DirectoryNotFound, err)
	}
	if len(found) == 0 {
		return "", errors.NewFileError("no folder matches "+selectorPattern(sel.Args), base, errors.DirectoryNotFound, nil)
	}

	sort.Strings(found)
	if sel.Kind == types.SelectFirst {
		return found[0], nil
	}
	return found[len(found)-1], nil
}
