package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/verdantscapes/availability-service/internal/config"
	"github.com/verdantscapes/availability-service/internal/core/domain"
	"github.com/verdantscapes/availability-service/internal/core/ports/out"
)

const (
	defaultBaseURL = "https://api.notion.com"
	notionVersion  = "2022-06-28"

	// datePropertyName is the database property holding each booking's
	// scheduled window.
	datePropertyName = "Date"

	// defaultEntryDuration pads entries saved without an explicit end.
	defaultEntryDuration = time.Hour
)

// NotionAdapter reports committed time from the bookings database in
// Notion. Failures degrade to an empty interval list so an unreachable
// workspace never blocks bookings.
type NotionAdapter struct {
	client     *http.Client
	baseURL    string
	apiKey     string
	databaseID string
	logger     out.LoggerPort
}

func NewNotionAdapter(cfg *config.Config, logger out.LoggerPort) *NotionAdapter {
	return &NotionAdapter{
		client:     &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     cfg.Notion.APIKey,
		databaseID: cfg.Notion.DatabaseID,
		logger:     logger,
	}
}

func (a *NotionAdapter) Name() string {
	return "notion"
}

type queryRequest struct {
	Filter queryFilter `json:"filter"`
}

type queryFilter struct {
	And []propertyFilter `json:"and"`
}

type propertyFilter struct {
	Property string     `json:"property"`
	Date     dateFilter `json:"date"`
}

type dateFilter struct {
	OnOrAfter  string `json:"on_or_after,omitempty"`
	OnOrBefore string `json:"on_or_before,omitempty"`
}

type queryResponse struct {
	Results []struct {
		Properties map[string]struct {
			Date *struct {
				Start string `json:"start"`
				End   string `json:"end"`
			} `json:"date"`
		} `json:"properties"`
	} `json:"results"`
}

func (a *NotionAdapter) GetBusyTimes(ctx context.Context, rangeStart, rangeEnd time.Time) []domain.BusyInterval {
	if a.apiKey == "" || a.databaseID == "" {
		a.logger.Warn("notion.busy_times.credentials_missing", out.LogFields{})
		return []domain.BusyInterval{}
	}

	body, err := json.Marshal(queryRequest{
		Filter: queryFilter{
			And: []propertyFilter{
				{Property: datePropertyName, Date: dateFilter{OnOrAfter: rangeStart.Format(time.RFC3339)}},
				{Property: datePropertyName, Date: dateFilter{OnOrBefore: rangeEnd.Format(time.RFC3339)}},
			},
		},
	})
	if err != nil {
		a.logger.Warn("notion.busy_times.encode_failed", out.LogFields{
			"error": err.Error(),
		})
		return []domain.BusyInterval{}
	}

	url := fmt.Sprintf("%s/v1/databases/%s/query", a.baseURL, a.databaseID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		a.logger.Warn("notion.busy_times.request_failed", out.LogFields{
			"error": err.Error(),
		})
		return []domain.BusyInterval{}
	}

	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Warn("notion.busy_times.request_failed", out.LogFields{
			"error": err.Error(),
		})
		return []domain.BusyInterval{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("notion.busy_times.unexpected_status", out.LogFields{
			"status": resp.StatusCode,
		})
		return []domain.BusyInterval{}
	}

	var queryResp queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&queryResp); err != nil {
		a.logger.Warn("notion.busy_times.decode_failed", out.LogFields{
			"error": err.Error(),
		})
		return []domain.BusyInterval{}
	}

	intervals := make([]domain.BusyInterval, 0, len(queryResp.Results))
	for _, page := range queryResp.Results {
		property, exists := page.Properties[datePropertyName]
		if !exists || property.Date == nil {
			continue
		}

		start, err := parseNotionDate(property.Date.Start)
		if err != nil {
			continue
		}

		end := start.Add(defaultEntryDuration)
		if property.Date.End != "" {
			if parsed, err := parseNotionDate(property.Date.End); err == nil {
				end = parsed
			}
		}

		intervals = append(intervals, domain.BusyInterval{Start: start, End: end})
	}

	a.logger.Debug("notion.busy_times.fetch_success", out.LogFields{
		"count": len(intervals),
	})

	return intervals
}

// parseNotionDate accepts the two forms Notion emits for date properties:
// full RFC3339 timestamps and bare dates.
func parseNotionDate(s string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", s)
}
