package availability_service

import (
	"time"

	"github.com/verdantscapes/availability-service/internal/utils"
)

// generateSlots enumerates every candidate start instant for one date,
// walking from StartOfDay by SlotDuration while the start stays strictly
// before EndOfDay. A slot whose start fits is emitted even when its end
// runs past EndOfDay. Pure function of (date, template); busy intervals and
// the clock never enter here.
func (s *AvailabilityService) generateSlots(date time.Time) []time.Time {
	dayStart := utils.At(date, s.hours.StartOfDay.Hour, s.hours.StartOfDay.Minute, s.location)
	dayEnd := utils.At(date, s.hours.EndOfDay.Hour, s.hours.EndOfDay.Minute, s.location)

	var starts []time.Time
	for current := dayStart; current.Before(dayEnd); current = current.Add(s.hours.SlotDuration) {
		starts = append(starts, current)
	}

	return starts
}
