package domain

import (
	"testing"
	"time"
)

func TestBusyIntervalOverlaps(t *testing.T) {
	day := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	at := func(hour, minute int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
	}

	// slot under test: [10:00, 11:00)
	slotStart, slotEnd := at(10, 0), at(11, 0)

	tests := []struct {
		name string
		busy BusyInterval
		want bool
	}{
		{"contained within slot", BusyInterval{at(10, 30), at(10, 45)}, true},
		{"spans whole slot", BusyInterval{at(9, 0), at(12, 0)}, true},
		{"overlaps start", BusyInterval{at(9, 30), at(10, 30)}, true},
		{"overlaps end", BusyInterval{at(10, 30), at(11, 30)}, true},
		{"ends exactly at slot start", BusyInterval{at(9, 0), at(10, 0)}, false},
		{"starts exactly at slot end", BusyInterval{at(11, 0), at(12, 0)}, false},
		{"entirely before", BusyInterval{at(8, 0), at(9, 0)}, false},
		{"entirely after", BusyInterval{at(12, 0), at(13, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.busy.Overlaps(slotStart, slotEnd); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", slotStart, slotEnd, got, tt.want)
			}
		})
	}
}

func TestNewCandidateSlotLabel(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{9, 0, "9:00 AM"},
		{12, 0, "12:00 PM"},
		{14, 30, "2:30 PM"},
		{0, 0, "12:00 AM"},
	}

	for _, tt := range tests {
		start := time.Date(2024, 1, 3, tt.hour, tt.minute, 0, 0, time.UTC)
		slot := NewCandidateSlot(start)
		if slot.Label != tt.want {
			t.Errorf("label for %02d:%02d = %q, want %q", tt.hour, tt.minute, slot.Label, tt.want)
		}
		if !slot.StartTime.Equal(start) {
			t.Errorf("start time mutated: %v", slot.StartTime)
		}
	}
}
