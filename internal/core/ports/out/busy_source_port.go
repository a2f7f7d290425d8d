package out

import (
	"context"
	"time"

	"github.com/verdantscapes/availability-service/internal/core/domain"
)

// BusySourcePort is one external calendar backend that reports committed
// time for the calendar owner.
//
// Implementations degrade to open: any failure reaching the backend
// (missing credentials, network error, non-2xx status, malformed response)
// is absorbed behind this boundary and surfaces as an empty slice, never as
// an error. An unreachable backend must widen apparent availability, not
// block every booking. One attempt per call, no retry, no caching.
type BusySourcePort interface {
	// Name identifies the backend in logs.
	Name() string

	// GetBusyTimes returns the committed intervals between rangeStart and
	// rangeEnd, typically one calendar day.
	GetBusyTimes(ctx context.Context, rangeStart, rangeEnd time.Time) []domain.BusyInterval
}
