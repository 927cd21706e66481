package analysis

import (
	"sort"

	"go.uber.org/zap"

	"aimscope/internal/models"
)

// GapThreshold is the maximum time gap, in seconds, between consecutive move
// samples inside one movement sequence. A larger gap seals the open sequence
// and starts a new one.
const GapThreshold = 0.5

// minMoveSamples is the smallest session worth segmenting. Below it the
// engine returns no events rather than an error.
const minMoveSamples = 10

// Options qualifies sealed sequences as aiming events.
type Options struct {
	MinDuration float64 // seconds
	MinDistance float64 // pixels
}

// DefaultOptions returns the library defaults. The orchestration layer uses a
// looser 30 px distance floor from its own configuration.
func DefaultOptions() Options {
	return Options{MinDuration: 0.1, MinDistance: 50}
}

// Segmenter splits a session's move samples into movement sequences and emits
// the qualifying ones as aiming events.
type Segmenter struct {
	log      *zap.Logger
	computer *Computer
	opts     Options
}

func NewSegmenter(log *zap.Logger, computer *Computer, opts Options) *Segmenter {
	return &Segmenter{log: log, computer: computer, opts: opts}
}

// Segment consumes the full raw sample stream, keeps the move samples, sorts
// them by time (stable, so equal timestamps keep their source order), and
// folds them into sequences with the gap rule. Emitted events are in
// chronological order of sequence start.
func (s *Segmenter) Segment(samples []models.RawSample) []models.AimingEvent {
	moves := make([]models.RawSample, 0, len(samples))
	for _, sample := range samples {
		if sample.Kind == models.EventMove {
			moves = append(moves, sample)
		}
	}
	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].Time < moves[j].Time
	})

	if len(moves) < minMoveSamples {
		s.log.Info("Not enough movement data to analyze",
			zap.Int("move_samples", len(moves)),
			zap.Int("required", minMoveSamples))
		return nil
	}

	var events []models.AimingEvent
	var current models.MovementSequence

	// lastTime starts at 0 rather than at the first sample's time. The first
	// sample is forced onto a new sequence regardless, so the only behavior
	// this pins down is how a hypothetical negative first timestamp would
	// segment. Kept as-is; changing it changes segmentation semantics.
	lastTime := 0.0

	for i, sample := range moves {
		if i == 0 || sample.Time-lastTime > GapThreshold {
			if len(current) > 0 {
				if ev := s.seal(current); ev != nil {
					events = append(events, *ev)
				}
			}
			current = models.MovementSequence{sample}
		} else {
			current = append(current, sample)
		}
		lastTime = sample.Time
	}

	// End-of-stream flush.
	if len(current) > 0 {
		if ev := s.seal(current); ev != nil {
			events = append(events, *ev)
		}
	}

	s.log.Debug("Segmentation complete",
		zap.Int("move_samples", len(moves)),
		zap.Int("aiming_events", len(events)))

	return events
}

// seal computes metrics for a finished sequence and returns the aiming event
// if the sequence qualifies, nil otherwise.
func (s *Segmenter) seal(seq models.MovementSequence) *models.AimingEvent {
	metrics := s.computer.Compute(seq)
	if metrics == nil {
		return nil
	}
	if metrics.Duration < s.opts.MinDuration || metrics.TotalDistance < s.opts.MinDistance {
		return nil
	}

	first, last := seq.First(), seq.Last()
	return &models.AimingEvent{
		Metrics:   *metrics,
		StartTime: first.Time,
		EndTime:   last.Time,
		StartPos:  models.Point{X: float64(first.X), Y: float64(first.Y)},
		EndPos:    models.Point{X: float64(last.X), Y: float64(last.Y)},
	}
}
