package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aimscope/internal/analysis"
	"aimscope/internal/config"
	"aimscope/internal/database"
	"aimscope/internal/logging"
	"aimscope/internal/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for importing and browsing analyzed runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Swap the console logger for the full rotating-file logger.
		full, err := logging.Init(config.Conf.Logging)
		if err != nil {
			return err
		}
		log = full

		database.Init(log)

		opts := analysis.Options{
			MinDuration: config.Conf.Analysis.MinDuration,
			MinDistance: config.Conf.Analysis.MinDistance,
		}
		r := router.Setup(log, opts)

		port := ":" + config.Conf.Server.Port
		log.Info("Server listening on http://localhost" + port)
		if err := r.Run(port); err != nil {
			log.Error("Failed to run server", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
