package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/codimo/textmerge/internal/config"
	"github.com/codimo/textmerge/internal/logging"
)

// exitError ends the process with code without printing anything more
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// errConflicts signals that conflicts were reported
var errConflicts = &exitError{code: 1}

// app carries the state shared by all subcommands
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "textmerge",
		Short: "Three-way merge of text files and directories",
		Long: `textmerge merges two variants of a common base text.

Examples:
  textmerge merge base.txt remote.txt local.txt -o merged.txt
  textmerge hunks old.txt new.txt
  textmerge tree base/ remote/ local/ -o merged/`,
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file (default: .textmerge.yaml in the working or home directory)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newMergeCmd(a),
		newHunksCmd(a),
		newTreeCmd(a),
		newStatusCmd(a),
		newResolveCmd(a),
		newAbortCmd(a),
	)

	return rootCmd
}

// setup loads the configuration and builds the logger
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}
