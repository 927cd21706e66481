package models

// Label classifies an aiming event relative to the batch it was scored in.
type Label string

const (
	LabelSmooth  Label = "smooth"
	LabelJittery Label = "jittery"
)

// Point is a screen position in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Metrics holds the kinematic smoothness measurements derived from one
// movement sequence. Defined only for sequences with at least three samples.
type Metrics struct {
	Duration             float64 `json:"duration"`
	TotalDistance        float64 `json:"totalDistance"`
	StraightLineDistance float64 `json:"straightLineDistance"`
	PathEfficiency       float64 `json:"pathEfficiency"`
	AvgVelocity          float64 `json:"avgVelocity"`
	VelocityVariance     float64 `json:"velocityVariance"`
	AccelerationVariance float64 `json:"accelerationVariance"`
	JitterScore          float64 `json:"jitterScore"`
	NumPoints            int     `json:"numPoints"`
}

// AimingEvent is a qualifying movement sequence paired with its metrics.
// Created once during segmentation and never mutated afterwards, except for
// the label assigned during batch classification.
type AimingEvent struct {
	Metrics
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	StartPos  Point   `json:"startPos"`
	EndPos    Point   `json:"endPos"`
	Label     Label   `json:"label,omitempty"`
}
