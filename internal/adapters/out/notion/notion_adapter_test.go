package notion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/verdantscapes/availability-service/internal/config"
	"github.com/verdantscapes/availability-service/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields) {}
func (nopLogger) Info(string, out.LogFields) {}
func (nopLogger) Warn(string, out.LogFields) {}
func (nopLogger) Error(string, out.LogFields) {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort { return l }

func newTestAdapter(baseURL string) *NotionAdapter {
	cfg := &config.Config{}
	cfg.Notion.APIKey = "secret"
	cfg.Notion.DatabaseID = "db123"

	adapter := NewNotionAdapter(cfg, nopLogger{})
	adapter.baseURL = baseURL
	return adapter
}

var (
	rangeStart = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(2024, 1, 3, 23, 59, 59, 999000000, time.UTC)
)

func TestGetBusyTimesParsesEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/databases/db123/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got == "" {
			t.Error("missing Notion-Version header")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [
				{"properties": {"Date": {"date": {"start": "2024-01-03T13:00:00Z", "end": "2024-01-03T14:30:00Z"}}}},
				{"properties": {"Date": {"date": {"start": "2024-01-03T15:00:00Z", "end": ""}}}},
				{"properties": {"Name": {}}}
			]
		}`))
	}))
	defer server.Close()

	intervals := newTestAdapter(server.URL).GetBusyTimes(context.Background(), rangeStart, rangeEnd)

	if len(intervals) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(intervals))
	}
	if !intervals[0].End.Equal(time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC)) {
		t.Errorf("explicit end not honored: %v", intervals[0].End)
	}
	// entry without an end is padded to an hour
	if got := intervals[1].End.Sub(intervals[1].Start); got != time.Hour {
		t.Errorf("default duration = %v, want 1h", got)
	}
}

func TestGetBusyTimesDegradesToEmpty(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		intervals := newTestAdapter(server.URL).GetBusyTimes(context.Background(), rangeStart, rangeEnd)
		if len(intervals) != 0 {
			t.Fatalf("expected empty result, got %d intervals", len(intervals))
		}
	})

	t.Run("unreachable backend", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		intervals := newTestAdapter(server.URL).GetBusyTimes(context.Background(), rangeStart, rangeEnd)
		if len(intervals) != 0 {
			t.Fatalf("expected empty result, got %d intervals", len(intervals))
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		intervals := newTestAdapter(server.URL).GetBusyTimes(context.Background(), rangeStart, rangeEnd)
		if len(intervals) != 0 {
			t.Fatalf("expected empty result, got %d intervals", len(intervals))
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		adapter := NewNotionAdapter(&config.Config{}, nopLogger{})

		intervals := adapter.GetBusyTimes(context.Background(), rangeStart, rangeEnd)
		if len(intervals) != 0 {
			t.Fatalf("expected empty result, got %d intervals", len(intervals))
		}
	})
}

func TestParseNotionDate(t *testing.T) {
	if _, err := parseNotionDate("2024-01-03T13:00:00Z"); err != nil {
		t.Errorf("RFC3339 should parse: %v", err)
	}
	if _, err := parseNotionDate("2024-01-03"); err != nil {
		t.Errorf("bare date should parse: %v", err)
	}
	if _, err := parseNotionDate("yesterday"); err == nil {
		t.Error("junk should not parse")
	}
}
