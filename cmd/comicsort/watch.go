package main

import (
	"os"
	"os/signal"
	"syscall"

	"comicsort/internal/watch"
	"comicsort/pkg/types"

	"github.com/spf13/cobra"
)

// newWatchCmd creates a command for watch mode
func newWatchCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sort the download directory, then keep sorting new files",
		Long: `Sort the download directory once, then watch it and sort each new file as
it appears. Stops on Ctrl+C or SIGTERM.`,
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

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			daemon := watch.NewDaemon(engine, download)
			daemon.SetCallback(func(results []types.OrganizeResult) {
				printResults(out, results, engine.IsDryRun())
			})
			return daemon.Run(ctx)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would be done without actually moving files")

	return cmd
}
