package googlecal

import (
	"context"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/verdantscapes/availability-service/internal/config"
	"github.com/verdantscapes/availability-service/internal/core/domain"
	"github.com/verdantscapes/availability-service/internal/core/ports/out"
)

const requestTimeout = 10 * time.Second

// GoogleCalendarAdapter reports committed time from the owner's Google
// Calendar through the FreeBusy API. Failures degrade to an empty interval
// list so an unreachable calendar never blocks bookings.
type GoogleCalendarAdapter struct {
	apiKey     string
	calendarID string
	logger     out.LoggerPort
}

func NewGoogleCalendarAdapter(cfg *config.Config, logger out.LoggerPort) *GoogleCalendarAdapter {
	return &GoogleCalendarAdapter{
		apiKey:     cfg.GoogleCalendar.APIKey,
		calendarID: cfg.GoogleCalendar.CalendarID,
		logger:     logger,
	}
}

func (a *GoogleCalendarAdapter) Name() string {
	return "google_calendar"
}

func (a *GoogleCalendarAdapter) GetBusyTimes(ctx context.Context, rangeStart, rangeEnd time.Time) []domain.BusyInterval {
	if a.apiKey == "" || a.calendarID == "" {
		a.logger.Warn("googlecal.busy_times.credentials_missing", out.LogFields{})
		return []domain.BusyInterval{}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	service, err := calendar.NewService(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		a.logger.Warn("googlecal.busy_times.service_init_failed", out.LogFields{
			"error": err.Error(),
		})
		return []domain.BusyInterval{}
	}

	request := &calendar.FreeBusyRequest{
		TimeMin: rangeStart.Format(time.RFC3339),
		TimeMax: rangeEnd.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: a.calendarID}},
	}

	response, err := service.Freebusy.Query(request).Context(ctx).Do()
	if err != nil {
		a.logger.Warn("googlecal.busy_times.query_failed", out.LogFields{
			"error": err.Error(),
		})
		return []domain.BusyInterval{}
	}

	calendarBusy, exists := response.Calendars[a.calendarID]
	if !exists {
		a.logger.Warn("googlecal.busy_times.calendar_missing", out.LogFields{
			"calendarId": a.calendarID,
		})
		return []domain.BusyInterval{}
	}

	intervals := mapBusyPeriods(calendarBusy.Busy)

	a.logger.Debug("googlecal.busy_times.fetch_success", out.LogFields{
		"count": len(intervals),
	})

	return intervals
}

// mapBusyPeriods converts FreeBusy periods to domain intervals, skipping
// entries whose timestamps do not parse.
func mapBusyPeriods(periods []*calendar.TimePeriod) []domain.BusyInterval {
	intervals := make([]domain.BusyInterval, 0, len(periods))

	for _, period := range periods {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			continue
		}
		intervals = append(intervals, domain.BusyInterval{Start: start, End: end})
	}

	return intervals
}
