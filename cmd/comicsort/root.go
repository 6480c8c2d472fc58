package main

import (
	"comicsort/internal/config"
	"comicsort/internal/log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	cfgFile string
	verbose bool
	jsonLog bool
	logFile string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "comicsort",
		Short: "Sort downloaded webcomics into your library",
		Long: `comicsort moves downloaded webcomic strips into per-series folders and
renames them according to the mappings in its configuration file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Shutdown()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $COMICSORT_CONFIG or $HOME/.config/comicsort/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonLog, "json-log", false, "write log lines as JSON")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "also append log lines to this file")

	rootCmd.AddCommand(newSortCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newMappingsCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))

	return rootCmd
}

// setupLogging points the package logger at the command's error stream and
// tags every line with a fresh run id.
func setupLogging(cmd *cobra.Command, opts *rootOptions) {
	logOpts := []log.Option{
		log.WithOutput(cmd.ErrOrStderr()),
		log.WithFields(log.F("run", uuid.NewString())),
	}
	if opts.jsonLog {
		logOpts = append(logOpts, log.WithJSON())
	}
	if opts.logFile != "" {
		logOpts = append(logOpts, log.WithFile(opts.logFile))
	}
	log.Configure(logOpts...)
	log.SetDebug(opts.verbose)
}

// loadConfig reads the file named by --config, or the default location.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	if opts.cfgFile != "" {
		return config.LoadFile(opts.cfgFile)
	}
	return config.Load()
}
