package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aimscope/internal/analysis"
	"aimscope/internal/capture"
	"aimscope/internal/config"
	"aimscope/internal/database"
	"aimscope/internal/report"
	"aimscope/internal/repository"
)

var (
	analyzeMinDuration float64
	analyzeMinDistance float64
	analyzeOut         string
	analyzeSave        bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <session.csv>",
	Short: "Analyze one recorded session and print the smoothness report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := analysisOptions(cmd)
		res, err := analyzeFile(args[0], opts)
		if err != nil {
			return err
		}

		if analyzeSave && res.EventCount() > 0 {
			database.Init(log)
			run, err := repository.SaveResult(cmd.Context(), res)
			if err != nil {
				return err
			}
			log.Info("Run stored", zap.String("run_id", run.ID))
		}

		out := os.Stdout
		if analyzeOut != "" {
			f, err := os.Create(analyzeOut)
			if err != nil {
				return fmt.Errorf("create report file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return writeReport(out, res)
	},
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeMinDuration, "min-duration", 0,
		"minimum event duration in seconds (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeMinDistance, "min-distance", 0,
		"minimum event path length in pixels (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "",
		"write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false,
		"also store the analyzed run in the database")
	rootCmd.AddCommand(analyzeCmd)
}

// analysisOptions starts from the configured qualification settings and lets
// explicit flags override them.
func analysisOptions(cmd *cobra.Command) analysis.Options {
	opts := analysis.Options{
		MinDuration: config.Conf.Analysis.MinDuration,
		MinDistance: config.Conf.Analysis.MinDistance,
	}
	if cmd.Flags().Changed("min-duration") {
		opts.MinDuration = analyzeMinDuration
	}
	if cmd.Flags().Changed("min-distance") {
		opts.MinDistance = analyzeMinDistance
	}
	return opts
}

// writeReport renders the plain-text report, or a short notice when the
// session produced no qualifying events.
func writeReport(out *os.File, res *analysis.Result) error {
	if res.EventCount() == 0 {
		_, err := fmt.Fprintf(out, "No aiming events found (%d samples, %d movements).\n",
			res.SampleCount, res.MoveCount)
		return err
	}
	return report.Write(out, res.Smooth, res.Jittery)
}

// analyzeFile reads one session log and runs the full pipeline over it.
func analyzeFile(path string, opts analysis.Options) (*analysis.Result, error) {
	samples, skipped, err := capture.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Warn("Skipped malformed rows in session log",
			zap.String("file", path),
			zap.Int("skipped", skipped))
	}
	return analysis.NewPipeline(log, opts).Run(path, samples), nil
}
