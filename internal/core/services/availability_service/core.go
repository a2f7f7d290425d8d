package availability_service

import (
	"context"
	"sync"
	"time"

	"github.com/verdantscapes/availability-service/internal/config"
	"github.com/verdantscapes/availability-service/internal/core/domain"
	"github.com/verdantscapes/availability-service/internal/core/ports/out"
	"github.com/verdantscapes/availability-service/internal/utils"
)

// MinimumLeadTime is how far in the future a slot must start before a
// customer may book it. Hardcoded business rule.
const MinimumLeadTime = time.Hour

// AvailabilityService merges candidate slots with committed intervals from
// every configured calendar backend to produce the bookable slot list.
type AvailabilityService struct {
	sources  []out.BusySourcePort
	hours    config.BusinessHours
	location *time.Location
	logger   out.LoggerPort
	now      func() time.Time
}

func NewAvailabilityService(
	sources []out.BusySourcePort,
	hours config.BusinessHours,
	location *time.Location,
	logger out.LoggerPort,
) *AvailabilityService {
	svc := &AvailabilityService{
		sources:  sources,
		hours:    hours,
		location: location,
		logger:   logger.WithModule("AvailabilityService"),
	}
	svc.now = func() time.Time {
		return time.Now().In(location)
	}
	return svc
}

// ResolveDay computes the bookable slots for a single calendar date. Days
// off short-circuit to an empty result without touching any backend.
func (s *AvailabilityService) ResolveDay(ctx context.Context, date time.Time) []domain.CandidateSlot {
	if !s.hours.IsBusinessDay(date) {
		return []domain.CandidateSlot{}
	}

	rangeStart := utils.DayStart(date, s.location)
	rangeEnd := utils.DayEnd(date, s.location)

	busy := s.fetchBusyIntervals(ctx, rangeStart, rangeEnd)
	candidates := s.generateSlots(date)

	available := make([]domain.CandidateSlot, 0, len(candidates))
	earliestBookable := s.now().Add(MinimumLeadTime)

	for _, start := range candidates {
		if start.Before(earliestBookable) {
			continue
		}
		if overlapsAny(busy, start, start.Add(s.hours.SlotDuration)) {
			continue
		}
		available = append(available, domain.NewCandidateSlot(start))
	}

	s.logger.Debug("availability.resolve_day.finished", out.LogFields{
		"date":       date.Format(domain.DateKeyLayout),
		"candidates": len(candidates),
		"busy":       len(busy),
		"available":  len(available),
	})

	return available
}

// fetchBusyIntervals queries every source concurrently and concatenates the
// results. Source identity is discarded: only the bounds matter, and two
// backends both blocking the same period block it once or twice alike.
func (s *AvailabilityService) fetchBusyIntervals(ctx context.Context, rangeStart, rangeEnd time.Time) []domain.BusyInterval {
	var mu sync.Mutex
	var wg sync.WaitGroup
	busy := make([]domain.BusyInterval, 0)

	for _, source := range s.sources {
		wg.Add(1)
		go func(src out.BusySourcePort) {
			defer wg.Done()

			intervals := src.GetBusyTimes(ctx, rangeStart, rangeEnd)

			mu.Lock()
			busy = append(busy, intervals...)
			mu.Unlock()
		}(source)
	}
	wg.Wait()

	return busy
}

// ResolveRange resolves daysAhead consecutive dates starting at startDate,
// fanning the days out concurrently. Days off contribute no key to the map.
func (s *AvailabilityService) ResolveRange(ctx context.Context, startDate time.Time, daysAhead int) domain.AvailabilityMap {
	s.logger.Info("availability.resolve_range.started", out.LogFields{
		"startDate": startDate.Format(domain.DateKeyLayout),
		"daysAhead": daysAhead,
	})

	result := make(domain.AvailabilityMap)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < daysAhead; i++ {
		wg.Add(1)
		go func(date time.Time) {
			defer wg.Done()

			if !s.hours.IsBusinessDay(date) {
				return
			}
			slots := s.ResolveDay(ctx, date)

			mu.Lock()
			result[date.Format(domain.DateKeyLayout)] = slots
			mu.Unlock()
		}(startDate.AddDate(0, 0, i))
	}
	wg.Wait()

	s.logger.Info("availability.resolve_range.finished", out.LogFields{
		"startDate": startDate.Format(domain.DateKeyLayout),
		"daysAhead": daysAhead,
		"daysOpen":  len(result),
	})

	return result
}

func overlapsAny(busy []domain.BusyInterval, start, end time.Time) bool {
	for _, interval := range busy {
		if interval.Overlaps(start, end) {
			return true
		}
	}
	return false
}
