package analysis

import (
	"errors"

	"aimscope/internal/models"
)

// ErrEmptyBatch is returned when classification is requested for a batch with
// no aiming events. Percentile thresholds are undefined over an empty set, so
// this fails explicitly instead of producing empty partitions.
var ErrEmptyBatch = errors.New("classify: empty batch")

// Batch percentiles for the adaptive thresholds: the top 30% of jitter scores
// and velocity variances and the bottom 30% of path efficiencies mark an
// event as jittery.
const (
	jitterPercentile      = 70
	velocityVarPercentile = 70
	efficiencyPercentile  = 30
)

// Thresholds are the batch-relative classification boundaries.
type Thresholds struct {
	Jitter           float64 `json:"jitter"`
	VelocityVariance float64 `json:"velocityVariance"`
	Efficiency       float64 `json:"efficiency"`
}

// ComputeThresholds derives the percentile thresholds over a whole batch.
func ComputeThresholds(events []models.AimingEvent) (Thresholds, error) {
	if len(events) == 0 {
		return Thresholds{}, ErrEmptyBatch
	}

	jitter := make([]float64, len(events))
	velocityVar := make([]float64, len(events))
	efficiency := make([]float64, len(events))
	for i, ev := range events {
		jitter[i] = ev.JitterScore
		velocityVar[i] = ev.VelocityVariance
		efficiency[i] = ev.PathEfficiency
	}

	return Thresholds{
		Jitter:           percentile(jitter, jitterPercentile),
		VelocityVariance: percentile(velocityVar, velocityVarPercentile),
		Efficiency:       percentile(efficiency, efficiencyPercentile),
	}, nil
}

// Classify labels every event in the batch and partitions it into smooth and
// jittery events, preserving relative order. The thresholds depend on the
// whole batch, so this cannot run one event at a time; callers must collect
// all events first. An event is jittery when any metric falls strictly on the
// wrong side of its threshold, so a singleton batch is always smooth.
func Classify(events []models.AimingEvent) (smooth, jittery []models.AimingEvent, thr Thresholds, err error) {
	thr, err = ComputeThresholds(events)
	if err != nil {
		return nil, nil, Thresholds{}, err
	}

	for _, ev := range events {
		isJittery := ev.JitterScore > thr.Jitter ||
			ev.VelocityVariance > thr.VelocityVariance ||
			ev.PathEfficiency < thr.Efficiency

		if isJittery {
			ev.Label = models.LabelJittery
			jittery = append(jittery, ev)
		} else {
			ev.Label = models.LabelSmooth
			smooth = append(smooth, ev)
		}
	}
	return smooth, jittery, thr, nil
}
