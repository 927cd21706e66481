package analysis

import (
	"math"

	"aimscope/internal/dsp"
	"aimscope/internal/models"
)

// Filter parameters for the jitter score. The velocity profile is treated as
// a uniformly sampled signal; the cutoff is relative to its Nyquist frequency.
const (
	jitterFilterOrder  = 3
	jitterFilterCutoff = 0.3

	// Sequences whose velocity profile is this short fall back to velocity
	// variance as the jitter score.
	jitterFilterMinLen = 10
)

// zeroStepSubstitute replaces zero time deltas before velocity and
// acceleration are derived. Duration always uses the original timestamps.
const zeroStepSubstitute = 0.001

// Computer derives kinematic smoothness metrics for movement sequences.
type Computer struct {
	highpass dsp.Highpass
}

// NewComputer creates a Computer using the given high-pass filter for the
// jitter score.
func NewComputer(highpass dsp.Highpass) *Computer {
	return &Computer{highpass: highpass}
}

// NewDefaultComputer creates a Computer with the standard jitter filter.
func NewDefaultComputer() *Computer {
	f, err := dsp.NewButterworth(jitterFilterOrder, jitterFilterCutoff)
	if err != nil {
		// Fixed, valid parameters; the design cannot fail.
		panic(err)
	}
	return NewComputer(f)
}

// Compute derives the metrics for one movement sequence. Returns nil when the
// sequence has fewer than three samples; callers must treat that as "does not
// qualify", not as an error.
func (c *Computer) Compute(seq models.MovementSequence) *models.Metrics {
	if len(seq) < 3 {
		return nil
	}

	n := len(seq)
	dt := make([]float64, n-1)
	stepDist := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		dt[i] = seq[i+1].Time - seq[i].Time
		if dt[i] == 0 {
			dt[i] = zeroStepSubstitute
		}
		dx := float64(seq[i+1].X - seq[i].X)
		dy := float64(seq[i+1].Y - seq[i].Y)
		stepDist[i] = math.Hypot(dx, dy)
	}

	velocities := make([]float64, n-1)
	for i := range velocities {
		velocities[i] = stepDist[i] / dt[i]
	}

	// First difference of velocity over the same (substituted) dt array, a
	// jerk proxy rather than a midpoint-based acceleration.
	accelerations := make([]float64, n-2)
	for i := range accelerations {
		accelerations[i] = (velocities[i+1] - velocities[i]) / dt[i]
	}

	var totalDistance float64
	for _, d := range stepDist {
		totalDistance += d
	}
	straight := math.Hypot(
		float64(seq[n-1].X-seq[0].X),
		float64(seq[n-1].Y-seq[0].Y),
	)

	efficiency := 0.0
	if totalDistance > 0 {
		efficiency = straight / totalDistance
	}

	velocityVariance := 0.0
	if len(velocities) >= 2 {
		velocityVariance = variance(velocities)
	}
	accelerationVariance := 0.0
	if len(accelerations) >= 2 {
		accelerationVariance = variance(accelerations)
	}

	return &models.Metrics{
		Duration:             seq[n-1].Time - seq[0].Time,
		TotalDistance:        totalDistance,
		StraightLineDistance: straight,
		PathEfficiency:       efficiency,
		AvgVelocity:          mean(velocities),
		VelocityVariance:     velocityVariance,
		AccelerationVariance: accelerationVariance,
		JitterScore:          c.jitterScore(velocities, velocityVariance),
		NumPoints:            n,
	}
}

// jitterScore measures high-frequency content in the velocity profile. Short
// profiles deliberately conflate jitter with velocity variance: there is not
// enough signal for the filter to say anything the variance does not.
func (c *Computer) jitterScore(velocities []float64, velocityVariance float64) float64 {
	if len(velocities) <= jitterFilterMinLen {
		return velocityVariance
	}

	filtered := c.highpass.Filter(velocities)
	abs := make([]float64, len(filtered))
	for i, v := range filtered {
		abs[i] = math.Abs(v)
	}
	return mean(abs)
}
