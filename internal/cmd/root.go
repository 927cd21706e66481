// Package cmd wires the aimscope subcommands together.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aimscope/internal/config"
	"aimscope/internal/logging"
)

// log is the active logger, populated in PersistentPreRunE. Commands that run
// as daemons replace it with the full rotating-file logger.
var log *zap.Logger

var projectRoot string

var rootCmd = &cobra.Command{
	Use:   "aimscope",
	Short: "Segment pointer recordings into aiming events and score their smoothness",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logging.Console()
		return config.Init(projectRoot, log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectRoot, "root", ".",
		"project root holding the config directory")
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	defer func() {
		if log != nil {
			log.Sync()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
