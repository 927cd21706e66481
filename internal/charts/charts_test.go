package charts

import (
	"strings"
	"testing"

	"aimscope/internal/models"
)

func event(label models.Label, duration, efficiency, jitter float64) models.AimingEvent {
	return models.AimingEvent{
		Metrics: models.Metrics{
			Duration:       duration,
			PathEfficiency: efficiency,
			JitterScore:    jitter,
		},
		Label: label,
	}
}

func TestNewPageRenders(t *testing.T) {
	smooth := []models.AimingEvent{
		event(models.LabelSmooth, 0.4, 0.95, 2),
		event(models.LabelSmooth, 0.6, 0.90, 3),
	}
	jittery := []models.AimingEvent{
		event(models.LabelJittery, 1.2, 0.30, 40),
	}

	page := NewPage("session-1", smooth, jittery)

	var sb strings.Builder
	if err := page.Render(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()

	for _, want := range []string{
		"Event Type Distribution",
		"Event Duration Distribution",
		"Path Efficiency Distribution",
		"Jitter vs Efficiency",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered page missing %q", want)
		}
	}
}

func TestNewPageEmptyBatch(t *testing.T) {
	page := NewPage("empty", nil, nil)
	var sb strings.Builder
	if err := page.Render(&sb); err != nil {
		t.Fatalf("rendering an empty batch should not fail: %v", err)
	}
}

func TestBinCounts(t *testing.T) {
	values := []float64{0, 0.1, 0.5, 0.99, 1.0}
	counts := binCounts(values, 0, 1, 5)

	want := []int{2, 0, 1, 0, 2} // upper edge lands in the last bin
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts = %v, want %v", counts, want)
		}
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	if total != len(values) {
		t.Errorf("bins hold %d values, want %d", total, len(values))
	}
}

func TestValueRangeDegenerate(t *testing.T) {
	lo, hi := valueRange([]float64{3, 3, 3})
	if lo != 3 || hi <= lo {
		t.Errorf("valueRange = [%g, %g], want non-degenerate interval at 3", lo, hi)
	}

	lo, hi = valueRange(nil)
	if hi <= lo {
		t.Errorf("valueRange(nil) = [%g, %g], want non-degenerate", lo, hi)
	}
}
