package transform

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"time"

	"comicsort/internal/errors"
	"comicsort/pkg/types"
)

var now = time.Now

var registry = map[types.FunctionID]types.CustomFunction{
	types.FunctionBloominFaeries: {
		ID:  types.FunctionBloominFaeries,
		Arg: types.ArgDir,
		Fn:  bloominFaeries,
	},
}

// Lookup returns the built-in function registered under id.
func Lookup(id types.FunctionID) (types.CustomFunction, bool) {
	fn, ok := registry[id]
	return fn, ok
}

// Functions lists the registered function ids in sorted order.
func Functions() []types.FunctionID {
	ids := make([]types.FunctionID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Apply runs fn with the argument it asks for.
func Apply(fn *types.CustomFunction, dir, filename string) (string, error) {
	arg := filename
	if fn.Arg == types.ArgDir {
		arg = dir
	}
	name, err := fn.Fn(arg)
	if err != nil {
		return "", errors.NewMappingError("custom function "+string(fn.ID), "", filename, errors.FunctionFailed, err)
	}
	if name == "" {
		return "", errors.NewKind(errors.FunctionFailed, "custom function %s returned an empty name for %q", fn.ID, filename)
	}
	return name, nil
}

var faeriesCounter = regexp.MustCompile(`^20\d{2}-(0[1-9]|1[0-2])-([0-2]\d|3[01])-BF(?P<counter>\d+)_Heather`)

// bloominFaeries names the next strip after the highest counter already in
// dir: "<today>-BF<counter+1>_Heather.jpg".
func bloominFaeries(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("reading %s: %w", dir, err)
	}

	latest := 0
	idx := faeriesCounter.SubexpIndex("counter")
	for _, entry := range entries {
		m := faeriesCounter.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[idx])
		if err != nil {
			continue
		}
		if n > latest {
			latest = n
		}
	}

	return fmt.Sprintf("%s-BF%04d_Heather.jpg", now().Format("2006-01-02"), latest+1), nil
}
