package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aimscope/internal/analysis"
	"aimscope/internal/config"
	"aimscope/internal/database"
	"aimscope/internal/logging"
	"aimscope/internal/repository"
	"aimscope/internal/watcher"
)

var (
	watchDir     string
	watchPattern string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the capture directory and store every finished session",
	RunE: func(cmd *cobra.Command, args []string) error {
		full, err := logging.Init(config.Conf.Logging)
		if err != nil {
			return err
		}
		log = full

		database.Init(log)

		dir := config.Conf.Capture.Directory
		if watchDir != "" {
			dir = watchDir
		}
		pattern := config.Conf.Capture.Pattern
		if watchPattern != "" {
			pattern = watchPattern
		}

		opts := analysis.Options{
			MinDuration: config.Conf.Analysis.MinDuration,
			MinDistance: config.Conf.Analysis.MinDistance,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w := watcher.New(log, dir, pattern, watcher.DefaultSettle, func(path string) error {
			res, err := analyzeFile(path, opts)
			if err != nil {
				return err
			}
			if res.EventCount() == 0 {
				log.Info("Session produced no aiming events", zap.String("file", path))
				return nil
			}
			run, err := repository.SaveResult(ctx, res)
			if errors.Is(err, repository.ErrDuplicateRun) {
				log.Info("Recording already analyzed", zap.String("file", path))
				return nil
			}
			if err != nil {
				return err
			}
			log.Info("Run stored",
				zap.String("run_id", run.ID),
				zap.String("file", path),
				zap.Int("smooth", run.SmoothCount),
				zap.Int("jittery", run.JitteryCount))
			return nil
		})

		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		log.Info("Watcher stopped")
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "",
		"capture directory to watch (default from config)")
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "",
		"session log file pattern (default from config)")
	rootCmd.AddCommand(watchCmd)
}
