package models

// EventKind distinguishes the record types the capture collaborator emits.
type EventKind string

const (
	EventMove  EventKind = "move"
	EventClick EventKind = "click"
)

// RawSample is one record from a recorded tracking session. Samples are
// produced by the external capture process and consumed read-only.
type RawSample struct {
	Time    float64   `json:"time"` // wall-clock seconds
	Kind    EventKind `json:"event"`
	X       int       `json:"x"`
	Y       int       `json:"y"`
	Button  string    `json:"button,omitempty"`
	Pressed *bool     `json:"pressed,omitempty"`
}

// MovementSequence is an ordered, non-empty run of move samples whose
// consecutive time gaps stay within the segmentation gap threshold.
type MovementSequence []RawSample

func (s MovementSequence) First() RawSample { return s[0] }
func (s MovementSequence) Last() RawSample  { return s[len(s)-1] }
