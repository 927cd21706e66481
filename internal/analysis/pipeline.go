package analysis

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"aimscope/internal/models"
)

// Result is one complete analysis of a recorded session. Smooth and Jittery
// partition Events; both preserve chronological order.
type Result struct {
	RunID       string
	Source      string
	SampleCount int
	MoveCount   int
	StartedAt   float64 // earliest sample timestamp, 0 for empty sessions
	Options     Options
	Thresholds  Thresholds
	Smooth      []models.AimingEvent
	Jittery     []models.AimingEvent
}

// EventCount is the total number of aiming events across both partitions.
func (r *Result) EventCount() int {
	return len(r.Smooth) + len(r.Jittery)
}

// Events re-interleaves both partitions into chronological order.
func (r *Result) Events() []models.AimingEvent {
	out := make([]models.AimingEvent, 0, r.EventCount())
	i, j := 0, 0
	for i < len(r.Smooth) && j < len(r.Jittery) {
		if r.Smooth[i].StartTime <= r.Jittery[j].StartTime {
			out = append(out, r.Smooth[i])
			i++
		} else {
			out = append(out, r.Jittery[j])
			j++
		}
	}
	out = append(out, r.Smooth[i:]...)
	out = append(out, r.Jittery[j:]...)
	return out
}

// Pipeline runs the two-phase analysis: segment and score every sequence
// first, then classify the complete batch. Classification never happens
// before the whole batch exists.
type Pipeline struct {
	log       *zap.Logger
	segmenter *Segmenter
	opts      Options
}

// NewPipeline builds a pipeline with the standard jitter filter.
func NewPipeline(log *zap.Logger, opts Options) *Pipeline {
	return &Pipeline{
		log:       log,
		segmenter: NewSegmenter(log, NewDefaultComputer(), opts),
		opts:      opts,
	}
}

// Run analyzes one session. A session with too little movement or no
// qualifying sequences produces a Result with zero events and no error;
// callers report that as a status, not a failure.
func (p *Pipeline) Run(source string, samples []models.RawSample) *Result {
	moveCount := 0
	startedAt := 0.0
	for i, s := range samples {
		if s.Kind == models.EventMove {
			moveCount++
		}
		if i == 0 || s.Time < startedAt {
			startedAt = s.Time
		}
	}

	res := &Result{
		RunID:       uuid.NewString(),
		Source:      source,
		SampleCount: len(samples),
		MoveCount:   moveCount,
		StartedAt:   startedAt,
		Options:     p.opts,
	}

	events := p.segmenter.Segment(samples)
	if len(events) == 0 {
		p.log.Info("No aiming events found", zap.String("source", source))
		return res
	}

	smooth, jittery, thr, err := Classify(events)
	if err != nil {
		// Unreachable: Classify only fails on an empty batch.
		p.log.Error("Classification failed", zap.Error(err))
		return res
	}

	res.Smooth = smooth
	res.Jittery = jittery
	res.Thresholds = thr

	p.log.Info("Session analyzed",
		zap.String("run_id", res.RunID),
		zap.String("source", source),
		zap.Int("events", res.EventCount()),
		zap.Int("smooth", len(smooth)),
		zap.Int("jittery", len(jittery)))

	return res
}
