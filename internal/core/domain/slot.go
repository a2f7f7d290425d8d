package domain

import "time"

const (
	// DateKeyLayout keys AvailabilityMap entries.
	DateKeyLayout = "2006-01-02"
	// SlotLabelLayout is the customer-facing 12-hour slot label.
	SlotLabelLayout = "3:04 PM"
)

// CandidateSlot is a single bookable start instant paired with its
// customer-facing label. Generated fresh per request, never persisted.
type CandidateSlot struct {
	StartTime time.Time `json:"datetime"`
	Label     string    `json:"time"`
}

// NewCandidateSlot builds a slot for the given start instant.
func NewCandidateSlot(start time.Time) CandidateSlot {
	return CandidateSlot{
		StartTime: start,
		Label:     start.Format(SlotLabelLayout),
	}
}

// AvailabilityMap maps a calendar date (YYYY-MM-DD) to that day's bookable
// slots in chronological order. Days off are omitted entirely.
type AvailabilityMap map[string][]CandidateSlot
