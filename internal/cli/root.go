// Package cli implements the hwrename command line.
package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mydehq/hwrename/internal/config"
	"github.com/mydehq/hwrename/internal/types"
	"github.com/mydehq/hwrename/internal/ui"
	"github.com/spf13/cobra"
)

var (
	logger    *log.Logger
	globalCfg *types.GlobalConfig

	flagLogLevel string
)

// RootCmd is the hwrename entry point
var RootCmd = &cobra.Command{
	Use:   "hwrename",
	Short: "Batch rename files from a lookup table",
	Long: `hwrename renames the files of a directory from a table of rows.

Each row names a target substring and the arguments of a filename
template. A file containing the target is renamed to the rendered
template, keeping its extension through {extname}.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setup(cmd)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		if logger == nil {
			logger = ui.NewLogger(os.Stderr, "info")
		}
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// setup loads the global config and builds the logger. A broken global
// config is reported and replaced by the defaults.
func setup(cmd *cobra.Command) {
	cfg, loadErr := config.LoadGlobal()
	if loadErr != nil {
		d := config.GetDefaults()
		cfg = &d
	}
	globalCfg = cfg

	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = flagLogLevel
	}
	logger = ui.NewLogger(os.Stderr, level)
	ui.SetLogger(logger)
	ui.ConfigureLoggerStyles()

	if loadErr != nil {
		logger.Warn("Ignoring global config", "path", config.GlobalPath(), "err", loadErr)
	}
}
