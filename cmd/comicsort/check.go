package main

import (
	"fmt"
	"path/filepath"

	"comicsort/internal/organize"

	"github.com/spf13/cobra"
)

// newCheckCmd creates the check command
func newCheckCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILENAME...",
		Short: "Show where files would be sorted",
		Long: `Resolve each filename against the mappings and print the mapping, directory
and new name it would get. Nothing is moved and no directories are created.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			cfg.Settings.DryRun = true

			engine, err := organize.CurrentOrganizerFactory(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(args))
			for _, name := range args {
				move, ok, err := engine.Resolve(name)
				switch {
				case !ok:
					rows = append(rows, []string{name, "-", "-", mutedStyle(out).Render("no match")})
				case err != nil:
					rows = append(rows, []string{name, move.Mapping, "-", errorStyle(out).Render(err.Error())})
				default:
					newName := filepath.Base(move.DestinationPath)
					if newName != filepath.Base(name) {
						newName = successStyle(out).Render(newName)
					}
					rows = append(rows, []string{name, move.Mapping, filepath.Dir(move.DestinationPath), newName})
				}
			}

			fmt.Fprintln(out, renderTable([]string{"File", "Mapping", "Directory", "Name"}, rows, nil))
			return nil
		},
	}

	return cmd
}
