package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvProduction Environment = "production"
)

// Business-hours defaults used whenever the corresponding env value is
// missing or malformed. Bad scheduling config should fall back, not take
// the whole service down.
const (
	DefaultStartOfDay          = "09:00"
	DefaultEndOfDay            = "17:00"
	DefaultSlotDurationMinutes = 60
	DefaultDaysOff             = "0,6"
)

// TimeOfDay is a wall-clock point within a business day.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// BusinessHours is the recurring weekly availability template. Immutable
// after NewConfig; safe for concurrent reads.
type BusinessHours struct {
	StartOfDay   TimeOfDay
	EndOfDay     TimeOfDay
	SlotDuration time.Duration
	DaysOff      map[time.Weekday]bool
}

// IsBusinessDay reports whether the date's weekday is not a day off.
func (b BusinessHours) IsBusinessDay(date time.Time) bool {
	return !b.DaysOff[date.Weekday()]
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"America/New_York"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Business struct {
		StartOfDayString   string `env:"BUSINESS_START_OF_DAY" envDefault:"09:00"`
		EndOfDayString     string `env:"BUSINESS_END_OF_DAY" envDefault:"17:00"`
		SlotDurationString string `env:"BUSINESS_SLOT_DURATION_MINUTES" envDefault:"60"`
		DaysOffString      string `env:"BUSINESS_DAYS_OFF" envDefault:"0,6"`
		Hours              BusinessHours
	}

	GoogleCalendar struct {
		APIKey     string `env:"GOOGLE_CALENDAR_API_KEY"`
		CalendarID string `env:"GOOGLE_CALENDAR_ID"`
	}

	Notion struct {
		APIKey     string `env:"NOTION_API_KEY"`
		DatabaseID string `env:"NOTION_DATABASE_ID"`
	}

	RateLimit struct {
		PerMinute int `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
		StoreSize int `env:"RATE_LIMIT_STORE_SIZE" envDefault:"10000"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))
	cfg.Business.Hours = parseBusinessHours(
		cfg.Business.StartOfDayString,
		cfg.Business.EndOfDayString,
		cfg.Business.SlotDurationString,
		cfg.Business.DaysOffString,
	)

	if cfg.RateLimit.PerMinute <= 0 {
		cfg.RateLimit.PerMinute = 20
	}
	if cfg.RateLimit.StoreSize <= 0 {
		cfg.RateLimit.StoreSize = 10000
	}

	return cfg, nil
}

// parseBusinessHours builds the weekly template, falling back to defaults
// field by field on malformed input. A start at or after the end is treated
// as malformed and resets both bounds.
func parseBusinessHours(startStr, endStr, durationStr, daysOffStr string) BusinessHours {
	start, okStart := parseTimeOfDay(startStr)
	end, okEnd := parseTimeOfDay(endStr)
	if !okStart || !okEnd || !start.before(end) {
		start, _ = parseTimeOfDay(DefaultStartOfDay)
		end, _ = parseTimeOfDay(DefaultEndOfDay)
	}

	minutes, err := strconv.Atoi(strings.TrimSpace(durationStr))
	if err != nil || minutes <= 0 {
		minutes = DefaultSlotDurationMinutes
	}

	daysOff, ok := parseDaysOff(daysOffStr)
	if !ok {
		daysOff, _ = parseDaysOff(DefaultDaysOff)
	}

	return BusinessHours{
		StartOfDay:   start,
		EndOfDay:     end,
		SlotDuration: time.Duration(minutes) * time.Minute,
		DaysOff:      daysOff,
	}
}

func (t TimeOfDay) before(other TimeOfDay) bool {
	return t.Hour*60+t.Minute < other.Hour*60+other.Minute
}

// parseTimeOfDay parses a 24-hour "HH:MM" string.
func parseTimeOfDay(s string) (TimeOfDay, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return TimeOfDay{}, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, false
	}

	return TimeOfDay{Hour: hour, Minute: minute}, true
}

// parseDaysOff parses a comma-separated list of weekday indices, 0=Sunday.
func parseDaysOff(s string) (map[time.Weekday]bool, bool) {
	daysOff := make(map[time.Weekday]bool)
	s = strings.TrimSpace(s)
	if s == "" {
		return daysOff, true
	}

	for _, part := range strings.Split(s, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 0 || idx > 6 {
			return nil, false
		}
		daysOff[time.Weekday(idx)] = true
	}

	return daysOff, true
}

// Location resolves the configured business timezone, UTC on failure.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return !c.IsLocal()
}
