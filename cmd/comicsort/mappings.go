package main

import (
	"fmt"
	"strconv"
	"strings"

	"comicsort/pkg/types"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

// newMappingsCmd creates the mappings command
func newMappingsCmd(opts *rootOptions) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "List the configured mappings",
		Long:  `List the mappings in the order they are tried, as compiled from the configuration file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			mappings, err := cfg.Mappings()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dump {
				dumper := spew.ConfigState{Indent: "  ", MaxDepth: 3, DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}
				fmt.Fprint(out, dumper.Sdump(mappings))
				return nil
			}

			rows := make([][]string, 0, len(mappings))
			for i, m := range mappings {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					m.Title,
					m.Source.Template,
					describeDirectory(m),
					describeNaming(m),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Title", "Pattern", "Directory", "Naming"},
				rows,
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the compiled mappings in full")

	return cmd
}

func describeDirectory(m types.Mapping) string {
	dir := m.Directory.Path
	if m.Selector != nil {
		args := append(append([]string{}, m.Selector.Args...), "*")
		dir += fmt.Sprintf(" (%s of %s)", m.Selector.Kind, strings.Join(args, "/"))
	}
	if m.Copy {
		dir += " [copy]"
	}
	return dir
}

func describeNaming(m types.Mapping) string {
	if m.Function != nil {
		return fmt.Sprintf("function %s(%s)", m.Function.ID, m.Function.Arg)
	}

	steps := []string{"extract " + m.Source.Body}
	if c := m.Chain; c != nil {
		if c.Splitter != "" {
			steps = append(steps, fmt.Sprintf("date split %q as %s joined by %q", c.Splitter, c.DateFormat, c.Merger))
		}
		if c.Substitution != nil {
			op := "replace"
			if c.ReplaceAll {
				op = "replace all"
			}
			steps = append(steps, fmt.Sprintf("%s /%s/ with %q", op, c.Substitution, c.Replacement))
		}
	}
	return strings.Join(steps, ", then ")
}
