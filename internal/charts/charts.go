// Package charts renders the visual summary of a classified session: label
// distribution, duration and efficiency histograms, and a jitter-vs-efficiency
// scatter.
package charts

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"aimscope/internal/models"
)

// histogramBins matches the bin count of the duration/efficiency panels.
const histogramBins = 15

// NewPage assembles the four analysis charts into one renderable page.
func NewPage(title string, smooth, jittery []models.AimingEvent) *components.Page {
	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(
		labelPie(smooth, jittery),
		durationHistogram(smooth, jittery),
		efficiencyHistogram(smooth, jittery),
		jitterScatter(smooth, jittery),
	)
	return page
}

func labelPie(smooth, jittery []models.AimingEvent) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Event Type Distribution"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	pie.AddSeries("Events", []opts.PieData{
		{Name: "Smooth Events", Value: len(smooth)},
		{Name: "Jittery Events", Value: len(jittery)},
	})
	return pie
}

func durationHistogram(smooth, jittery []models.AimingEvent) *charts.Bar {
	return histogram(
		"Event Duration Distribution", "Duration (seconds)",
		pluck(smooth, func(ev models.AimingEvent) float64 { return ev.Duration }),
		pluck(jittery, func(ev models.AimingEvent) float64 { return ev.Duration }),
	)
}

func efficiencyHistogram(smooth, jittery []models.AimingEvent) *charts.Bar {
	return histogram(
		"Path Efficiency Distribution", "Path Efficiency",
		pluck(smooth, func(ev models.AimingEvent) float64 { return ev.PathEfficiency }),
		pluck(jittery, func(ev models.AimingEvent) float64 { return ev.PathEfficiency }),
	)
}

func jitterScatter(smooth, jittery []models.AimingEvent) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Jitter vs Efficiency"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Jitter Score"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Path Efficiency"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	scatter.AddSeries("Smooth", scatterItems(smooth))
	scatter.AddSeries("Jittery", scatterItems(jittery))
	return scatter
}

func scatterItems(events []models.AimingEvent) []opts.ScatterData {
	items := make([]opts.ScatterData, 0, len(events))
	for _, ev := range events {
		items = append(items, opts.ScatterData{
			Value: []interface{}{ev.JitterScore, ev.PathEfficiency},
		})
	}
	return items
}

// histogram bars two value sets over a shared set of bins so the partitions
// are directly comparable.
func histogram(title, axisName string, smooth, jittery []float64) *charts.Bar {
	lo, hi := valueRange(append(append([]float64(nil), smooth...), jittery...))

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: axisName}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Frequency"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(binLabels(lo, hi, histogramBins)).
		AddSeries("Smooth", barItems(binCounts(smooth, lo, hi, histogramBins))).
		AddSeries("Jittery", barItems(binCounts(jittery, lo, hi, histogramBins)))
	return bar
}

func barItems(counts []int) []opts.BarData {
	items := make([]opts.BarData, len(counts))
	for i, c := range counts {
		items[i] = opts.BarData{Value: c}
	}
	return items
}

// valueRange returns the closed interval covering all values, widened to a
// non-degenerate interval when all values coincide.
func valueRange(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return 0, 1
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// binCounts distributes values into n equal-width bins over [lo, hi]; values
// at the upper edge land in the last bin.
func binCounts(values []float64, lo, hi float64, n int) []int {
	counts := make([]int, n)
	width := (hi - lo) / float64(n)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= n {
			idx = n - 1
		}
		counts[idx]++
	}
	return counts
}

func binLabels(lo, hi float64, n int) []string {
	labels := make([]string, n)
	width := (hi - lo) / float64(n)
	for i := range labels {
		center := lo + (float64(i)+0.5)*width
		labels[i] = fmt.Sprintf("%.2f", center)
	}
	return labels
}

func pluck(events []models.AimingEvent, f func(models.AimingEvent) float64) []float64 {
	out := make([]float64, len(events))
	for i, ev := range events {
		out[i] = f(ev)
	}
	return out
}
