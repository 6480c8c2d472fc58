package main

import (
	"fmt"

	"comicsort/internal/config"
	"comicsort/internal/log"
	"comicsort/internal/organize"
	"comicsort/internal/runlock"

	"github.com/spf13/cobra"
)

// newSortCmd creates the sort command
func newSortCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort the download directory once",
		Long: `Sort every file in the download directory using the first mapping that
matches it. Files that match no mapping are left where they are.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dry-run") {
				cfg.Settings.DryRun = dryRun
			}

			engine, download, release, err := prepare(cfg)
			if err != nil {
				return err
			}
			defer release()

			results, err := engine.ProcessDirectory(download)
			if err != nil {
				return err
			}

			summary := printResults(cmd.OutOrStdout(), results, engine.IsDryRun())
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d files could not be sorted", summary.Failed, summary.Matched)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be done without actually moving files")

	return cmd
}

// prepare builds the engine for cfg and, outside dry run mode, locks the
// download directory. The returned release func drops the lock.
func prepare(cfg *config.Config) (organize.Organizer, string, func(), error) {
	engine, err := organize.CurrentOrganizerFactory(cfg)
	if err != nil {
		return nil, "", nil, err
	}
	download, err := cfg.DownloadPath()
	if err != nil {
		return nil, "", nil, err
	}

	if engine.IsDryRun() {
		log.LogWithFields(log.F("directory", download)).Info("Dry run, no files will be moved")
		return engine, download, func() {}, nil
	}

	lock, err := runlock.Acquire(download)
	if err != nil {
		return nil, "", nil, err
	}
	return engine, download, lock.Release, nil
}
