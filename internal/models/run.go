package models

import (
	"time"
)

// Run is one persisted analysis of a recorded tracking session.
// (Source, StartedAt) identifies the underlying capture file, so re-importing
// the same recording is rejected as a duplicate.
type Run struct {
	ID          string  `gorm:"primaryKey;type:uuid" json:"id"`
	Source      string  `gorm:"uniqueIndex:idx_runs_source_start" json:"source"`
	StartedAt   float64 `gorm:"uniqueIndex:idx_runs_source_start" json:"startedAt"`
	SampleCount int     `json:"sampleCount"`
	MoveCount   int     `json:"moveCount"`

	MinDuration float64 `json:"minDuration"`
	MinDistance float64 `json:"minDistance"`

	JitterThreshold      float64 `json:"jitterThreshold"`
	VelocityVarThreshold float64 `json:"velocityVarThreshold"`
	EfficiencyThreshold  float64 `json:"efficiencyThreshold"`

	SmoothCount  int `json:"smoothCount"`
	JitteryCount int `json:"jitteryCount"`

	Events    []EventRecord `gorm:"foreignKey:RunID" json:"events,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// EventRecord is one labeled aiming event within a run. Seq preserves the
// chronological order the segmenter emitted.
type EventRecord struct {
	ID    int    `gorm:"primaryKey" json:"-"`
	RunID string `gorm:"type:uuid;index" json:"-"`
	Seq   int    `json:"seq"`
	Label Label  `json:"label"`

	Duration             float64 `json:"duration"`
	TotalDistance        float64 `json:"totalDistance"`
	StraightLineDistance float64 `json:"straightLineDistance"`
	PathEfficiency       float64 `json:"pathEfficiency"`
	AvgVelocity          float64 `json:"avgVelocity"`
	VelocityVariance     float64 `json:"velocityVariance"`
	AccelerationVariance float64 `json:"accelerationVariance"`
	JitterScore          float64 `json:"jitterScore"`
	NumPoints            int     `json:"numPoints"`

	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	StartX    float64 `json:"startX"`
	StartY    float64 `json:"startY"`
	EndX      float64 `json:"endX"`
	EndY      float64 `json:"endY"`

	CreatedAt time.Time `json:"-"`
}

// NewEventRecord flattens an aiming event for persistence.
func NewEventRecord(runID string, seq int, ev AimingEvent) EventRecord {
	return EventRecord{
		RunID:                runID,
		Seq:                  seq,
		Label:                ev.Label,
		Duration:             ev.Duration,
		TotalDistance:        ev.TotalDistance,
		StraightLineDistance: ev.StraightLineDistance,
		PathEfficiency:       ev.PathEfficiency,
		AvgVelocity:          ev.AvgVelocity,
		VelocityVariance:     ev.VelocityVariance,
		AccelerationVariance: ev.AccelerationVariance,
		JitterScore:          ev.JitterScore,
		NumPoints:            ev.NumPoints,
		StartTime:            ev.StartTime,
		EndTime:              ev.EndTime,
		StartX:               ev.StartPos.X,
		StartY:               ev.StartPos.Y,
		EndX:                 ev.EndPos.X,
		EndY:                 ev.EndPos.Y,
	}
}

// Event reconstructs the in-memory aiming event from a stored record.
func (r EventRecord) Event() AimingEvent {
	return AimingEvent{
		Metrics: Metrics{
			Duration:             r.Duration,
			TotalDistance:        r.TotalDistance,
			StraightLineDistance: r.StraightLineDistance,
			PathEfficiency:       r.PathEfficiency,
			AvgVelocity:          r.AvgVelocity,
			VelocityVariance:     r.VelocityVariance,
			AccelerationVariance: r.AccelerationVariance,
			JitterScore:          r.JitterScore,
			NumPoints:            r.NumPoints,
		},
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		StartPos:  Point{X: r.StartX, Y: r.StartY},
		EndPos:    Point{X: r.EndX, Y: r.EndY},
		Label:     r.Label,
	}
}
