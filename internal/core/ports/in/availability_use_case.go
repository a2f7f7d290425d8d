package in

import (
	"context"
	"time"

	"github.com/verdantscapes/availability-service/internal/core/domain"
)

type AvailabilityUseCase interface {
	// Resolve bookable slots for a single calendar date.
	ResolveDay(ctx context.Context, date time.Time) []domain.CandidateSlot

	// Resolve bookable slots for daysAhead consecutive dates starting at
	// startDate. Callers validate daysAhead (1..60) before invoking.
	ResolveRange(ctx context.Context, startDate time.Time, daysAhead int) domain.AvailabilityMap
}
