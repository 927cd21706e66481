package analysis

import (
	"errors"
	"math"
	"testing"

	"aimscope/internal/models"
)

func eventWith(jitter, velocityVar, efficiency float64) models.AimingEvent {
	return models.AimingEvent{
		Metrics: models.Metrics{
			JitterScore:      jitter,
			VelocityVariance: velocityVar,
			PathEfficiency:   efficiency,
		},
	}
}

func TestClassifyEmptyBatch(t *testing.T) {
	_, _, _, err := Classify(nil)
	if !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("Classify(nil) error = %v, want ErrEmptyBatch", err)
	}
	if _, err := ComputeThresholds(nil); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("ComputeThresholds(nil) error = %v, want ErrEmptyBatch", err)
	}
}

func TestClassifySingletonIsSmooth(t *testing.T) {
	smooth, jittery, thr, err := Classify([]models.AimingEvent{
		eventWith(99, 1234, 0.2),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(smooth) != 1 || len(jittery) != 0 {
		t.Fatalf("singleton partition = %d smooth, %d jittery; want 1, 0", len(smooth), len(jittery))
	}
	if smooth[0].Label != models.LabelSmooth {
		t.Errorf("Label = %q, want smooth", smooth[0].Label)
	}
	// Every threshold equals the event's own metric.
	if thr.Jitter != 99 || thr.VelocityVariance != 1234 || thr.Efficiency != 0.2 {
		t.Errorf("thresholds = %+v", thr)
	}
}

func TestClassifyIdenticalMetricsAllSmooth(t *testing.T) {
	// Values exactly at a threshold do not trigger; strict inequalities.
	var events []models.AimingEvent
	for i := 0; i < 8; i++ {
		events = append(events, eventWith(5, 50, 0.5))
	}

	smooth, jittery, _, err := Classify(events)
	if err != nil {
		t.Fatal(err)
	}
	if len(smooth) != 8 || len(jittery) != 0 {
		t.Fatalf("partition = %d smooth, %d jittery; want 8, 0", len(smooth), len(jittery))
	}
}

func TestClassifyHighJitterTail(t *testing.T) {
	// Jitter scores 1..10 with identical other metrics: the 70th percentile
	// is 7.3, so events 8, 9, 10 land in the jittery partition.
	var events []models.AimingEvent
	for i := 1; i <= 10; i++ {
		events = append(events, eventWith(float64(i), 100, 0.9))
	}

	smooth, jittery, thr, err := Classify(events)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(thr.Jitter-7.3) > 1e-12 {
		t.Errorf("jitter threshold = %g, want 7.3", thr.Jitter)
	}
	if len(smooth) != 7 || len(jittery) != 3 {
		t.Fatalf("partition = %d smooth, %d jittery; want 7, 3", len(smooth), len(jittery))
	}
	for i, ev := range jittery {
		if ev.JitterScore <= thr.Jitter {
			t.Errorf("jittery[%d] has jitter %g <= threshold", i, ev.JitterScore)
		}
		if ev.Label != models.LabelJittery {
			t.Errorf("jittery[%d].Label = %q", i, ev.Label)
		}
	}
}

func TestClassifyLowEfficiencyIsJittery(t *testing.T) {
	// Efficiencies 0.1..1.0: the 30th percentile is 0.37, so 0.1, 0.2, 0.3
	// fall strictly below it.
	var events []models.AimingEvent
	for i := 1; i <= 10; i++ {
		events = append(events, eventWith(1, 1, float64(i)/10))
	}

	smooth, jittery, thr, err := Classify(events)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(thr.Efficiency-0.37) > 1e-12 {
		t.Errorf("efficiency threshold = %g, want 0.37", thr.Efficiency)
	}
	if len(jittery) != 3 {
		t.Fatalf("jittery = %d, want 3", len(jittery))
	}
	if len(smooth) != 7 {
		t.Fatalf("smooth = %d, want 7", len(smooth))
	}
}

func TestClassifyPreservesRelativeOrder(t *testing.T) {
	var events []models.AimingEvent
	for i := 1; i <= 10; i++ {
		ev := eventWith(float64(i%3), 1, 0.9)
		ev.StartTime = float64(i)
		events = append(events, ev)
	}

	smooth, jittery, _, err := Classify(events)
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range [][]models.AimingEvent{smooth, jittery} {
		for i := 1; i < len(part); i++ {
			if part[i].StartTime < part[i-1].StartTime {
				t.Fatalf("partition out of order at %d: %g after %g",
					i, part[i].StartTime, part[i-1].StartTime)
			}
		}
	}
}
