package gate

import (
	"time"

	"github.com/google/uuid"

	"github.com/bwalyaChanda3/vehicle-access-system/pkg/registry"
)

// Outcome classifies what a detection cycle produced.
type Outcome string

// Every cycle ends in exactly one of these outcomes. NoDetection and
// NoText are expected, frequent non-errors; Suppressed means the
// cooldown gate absorbed a duplicate.
const (
	OutcomeNoDetection Outcome = "no_detection"
	OutcomeNoText      Outcome = "no_text"
	OutcomeSuppressed  Outcome = "suppressed"
	OutcomeApproved    Outcome = "approved"
	OutcomeDenied      Outcome = "denied"
)

// Event is the observable record of one detection cycle.
type Event struct {
	ID         string                `json:"id"`
	Outcome    Outcome               `json:"outcome"`
	Plate      string                `json:"plate,omitempty"`
	Confidence float64               `json:"confidence,omitempty"`
	Vehicle    *registry.VehicleInfo `json:"vehicle,omitempty"`
	Reason     string                `json:"reason,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

func newEvent(outcome Outcome, now time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Outcome:   outcome,
		Timestamp: now,
	}
}
