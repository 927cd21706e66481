package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"aimscope/internal/charts"
)

var chartOut string

var chartCmd = &cobra.Command{
	Use:   "chart <session.csv>",
	Short: "Analyze one recorded session and render the chart page to HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := analyzeFile(args[0], analysisOptions(cmd))
		if err != nil {
			return err
		}
		if res.EventCount() == 0 {
			return fmt.Errorf("no aiming events found in %s", args[0])
		}

		out := chartOut
		if out == "" {
			out = strings.TrimSuffix(args[0], ".csv") + ".html"
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create chart file: %w", err)
		}
		defer f.Close()

		page := charts.NewPage(args[0], res.Smooth, res.Jittery)
		if err := page.Render(f); err != nil {
			return fmt.Errorf("render charts: %w", err)
		}
		log.Info("Chart page written",
			zap.String("file", out),
			zap.Int("events", res.EventCount()))
		return nil
	},
}

func init() {
	chartCmd.Flags().Float64Var(&analyzeMinDuration, "min-duration", 0,
		"minimum event duration in seconds (default from config)")
	chartCmd.Flags().Float64Var(&analyzeMinDistance, "min-distance", 0,
		"minimum event path length in pixels (default from config)")
	chartCmd.Flags().StringVar(&chartOut, "out", "",
		"output HTML file (default: session log name with .html)")
	rootCmd.AddCommand(chartCmd)
}
