package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"comicsort/internal/errors"
	"comicsort/internal/pattern"
	"comicsort/internal/resolve"
	"comicsort/internal/transform"
	"comicsort/pkg/types"
)

// Mappings compiles the configured rules, in order, into mappings ready for
// the engine.
func (c *Config) Mappings() ([]types.Mapping, error) {
	root, err := c.RootPath()
	if err != nil {
		return nil, err
	}

	out := make([]types.Mapping, 0, len(c.Rules))
	for i, rule := range c.Rules {
		m, err := rule.compile(root, fmt.Sprintf("mappings[%d]", i))
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r MappingConfig) compile(root, param string) (types.Mapping, error) {
	m := types.Mapping{Title: r.Title, Copy: r.Copy}

	var err error
	if m.Source, err = pattern.Compile(r.Pattern); err != nil {
		return m, errors.NewConfigError("mapping "+r.Title, param+".pattern", errors.InvalidConfig, err)
	}

	dir := r.Directory
	if len(dir) == 0 {
		dir = Segments{r.Title}
	}
	if m.Directory, err = pattern.CompileDir(filepath.Join(root, dir.Join())); err != nil {
		return m, errors.NewConfigError("mapping "+r.Title, param+".directory", errors.InvalidConfig, err)
	}

	if r.Processors != nil {
		if m.Chain, err = r.Processors.chain(); err != nil {
			return m, errors.NewConfigError("mapping "+r.Title, param+".processors.pattern", errors.InvalidConfig, err)
		}
	}

	if r.Function != "" {
		fn, ok := transform.Lookup(types.FunctionID(r.Function))
		if !ok {
			known := make([]string, 0)
			for _, id := range transform.Functions() {
				known = append(known, string(id))
			}
			return m, errors.NewConfigError(
				fmt.Sprintf("mapping %s: unknown function %q (known: %s)", r.Title, r.Function, strings.Join(known, ", ")),
				param+".function", errors.InvalidConfig, nil)
		}
		m.Function = &fn
	}

	if r.Select != nil {
		if m.Selector, err = resolve.CompileSelector(r.Select.Name, r.Select.Args); err != nil {
			return m, errors.NewConfigError("mapping "+r.Title, param+".select", errors.InvalidConfig, err)
		}
	}
	return m, nil
}

func (p *Processors) chain() (*types.TransformChain, error) {
	chain := &types.TransformChain{
		Splitter:    p.Splitter,
		Merger:      p.Merger,
		DateFormat:  p.Format,
		Replacement: p.Replacement,
		ReplaceAll:  p.ReplaceAll,
	}
	if chain.Merger == "" {
		chain.Merger = types.DefaultMerger
	}
	if chain.DateFormat == "" {
		chain.DateFormat = transform.DefaultDateFormat
	}
	if p.Pattern != "" {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, err
		}
		chain.Substitution = re
	}
	return chain, nil
}
