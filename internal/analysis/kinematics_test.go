package analysis

import (
	"math"
	"testing"

	"aimscope/internal/models"
)

// lineSequence builds n move samples with the given time spacing, moving
// stepX pixels per sample along the x axis.
func lineSequence(n int, spacing float64, stepX int) models.MovementSequence {
	seq := make(models.MovementSequence, n)
	for i := range seq {
		seq[i] = models.RawSample{
			Time: float64(i) * spacing,
			Kind: models.EventMove,
			X:    i * stepX,
		}
	}
	return seq
}

func TestComputeTooFewSamples(t *testing.T) {
	c := NewDefaultComputer()
	for n := 0; n < 3; n++ {
		if m := c.Compute(lineSequence(n, 0.05, 10)); m != nil {
			t.Errorf("Compute with %d samples = %+v, want nil", n, m)
		}
	}
}

func TestComputeStraightLineConstantVelocity(t *testing.T) {
	// 12 samples at 50ms spacing from (0,0) to (550,0): 11 velocities, which
	// is above the >10 threshold, so the filtered jitter branch runs.
	c := NewDefaultComputer()
	m := c.Compute(lineSequence(12, 0.05, 50))
	if m == nil {
		t.Fatal("expected metrics")
	}

	if m.NumPoints != 12 {
		t.Errorf("NumPoints = %d, want 12", m.NumPoints)
	}
	if math.Abs(m.Duration-0.55) > 1e-12 {
		t.Errorf("Duration = %g, want 0.55", m.Duration)
	}
	if math.Abs(m.TotalDistance-550) > 1e-9 {
		t.Errorf("TotalDistance = %g, want 550", m.TotalDistance)
	}
	if math.Abs(m.StraightLineDistance-550) > 1e-9 {
		t.Errorf("StraightLineDistance = %g, want 550", m.StraightLineDistance)
	}
	if math.Abs(m.PathEfficiency-1) > 1e-12 {
		t.Errorf("PathEfficiency = %g, want 1", m.PathEfficiency)
	}
	if math.Abs(m.AvgVelocity-1000) > 1e-6 {
		t.Errorf("AvgVelocity = %g, want 1000", m.AvgVelocity)
	}
	if m.VelocityVariance > 1e-9 {
		t.Errorf("VelocityVariance = %g, want ~0", m.VelocityVariance)
	}
	if m.AccelerationVariance > 1e-6 {
		t.Errorf("AccelerationVariance = %g, want ~0", m.AccelerationVariance)
	}
	// A constant velocity profile has no high-frequency content.
	if m.JitterScore > 1e-6 {
		t.Errorf("JitterScore = %g, want ~0", m.JitterScore)
	}
}

func TestComputeJitterFallbackBoundary(t *testing.T) {
	// 11 samples give 10 velocities: exactly at the boundary, which takes the
	// fallback, so the jitter score equals the velocity variance.
	c := NewDefaultComputer()
	seq := make(models.MovementSequence, 11)
	for i := range seq {
		// Alternating step sizes make the variance non-zero.
		step := 10
		if i%2 == 0 {
			step = 30
		}
		prevX := 0
		if i > 0 {
			prevX = seq[i-1].X
		}
		seq[i] = models.RawSample{
			Time: float64(i) * 0.05,
			Kind: models.EventMove,
			X:    prevX + step,
		}
	}

	m := c.Compute(seq)
	if m == nil {
		t.Fatal("expected metrics")
	}
	if m.VelocityVariance == 0 {
		t.Fatal("test sequence should have non-zero velocity variance")
	}
	if m.JitterScore != m.VelocityVariance {
		t.Errorf("JitterScore = %g, want velocity variance %g", m.JitterScore, m.VelocityVariance)
	}
}

func TestComputeFilterBranchAtTwelveSamples(t *testing.T) {
	// 12 samples give 11 velocities: strictly above the boundary, so the
	// jitter score comes from the filter, not the variance fallback.
	c := NewDefaultComputer()
	seq := make(models.MovementSequence, 12)
	x := 0
	for i := range seq {
		step := 10
		if i%2 == 0 {
			step = 30
		}
		x += step
		seq[i] = models.RawSample{Time: float64(i) * 0.05, Kind: models.EventMove, X: x}
	}

	m := c.Compute(seq)
	if m == nil {
		t.Fatal("expected metrics")
	}
	if m.JitterScore == m.VelocityVariance {
		t.Errorf("JitterScore took the fallback; want filtered value distinct from variance %g", m.VelocityVariance)
	}
	if m.JitterScore <= 0 {
		t.Errorf("JitterScore = %g, want > 0 for an oscillating velocity profile", m.JitterScore)
	}
}

func TestComputeZeroTimestepSubstitution(t *testing.T) {
	c := NewDefaultComputer()
	seq := models.MovementSequence{
		{Time: 1.0, Kind: models.EventMove, X: 0, Y: 0},
		{Time: 1.0, Kind: models.EventMove, X: 30, Y: 40}, // zero dt
		{Time: 1.2, Kind: models.EventMove, X: 60, Y: 80},
	}

	m := c.Compute(seq)
	if m == nil {
		t.Fatal("expected metrics")
	}

	// Duration uses the original timestamps, never the substitution.
	if math.Abs(m.Duration-0.2) > 1e-12 {
		t.Errorf("Duration = %g, want 0.2", m.Duration)
	}
	if math.IsInf(m.AvgVelocity, 0) || math.IsNaN(m.AvgVelocity) {
		t.Errorf("AvgVelocity = %g, want finite", m.AvgVelocity)
	}
	// First step covers 50 px in the substituted 1ms: 50000 px/s.
	wantAvg := (50/0.001 + 50/0.2) / 2
	if math.Abs(m.AvgVelocity-wantAvg) > 1e-6 {
		t.Errorf("AvgVelocity = %g, want %g", m.AvgVelocity, wantAvg)
	}
}

func TestComputeStationarySequence(t *testing.T) {
	c := NewDefaultComputer()
	seq := models.MovementSequence{
		{Time: 0, Kind: models.EventMove, X: 5, Y: 5},
		{Time: 0.1, Kind: models.EventMove, X: 5, Y: 5},
		{Time: 0.2, Kind: models.EventMove, X: 5, Y: 5},
	}

	m := c.Compute(seq)
	if m == nil {
		t.Fatal("expected metrics")
	}
	if m.TotalDistance != 0 {
		t.Errorf("TotalDistance = %g, want 0", m.TotalDistance)
	}
	if m.PathEfficiency != 0 {
		t.Errorf("PathEfficiency = %g, want 0 when total distance is 0", m.PathEfficiency)
	}
}
