package booking

import (
	"time"
)

// slotLabels is the fixed hourly schedule grid every date offers. There is
// no per-visitor slot locking; two visitors may book the same slot.
var slotLabels = []string{
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"01:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
	"06:00 PM",
	"07:00 PM",
	"08:00 PM",
}

// Slot is one schedulable window with its availability for a concrete date.
type Slot struct {
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// SlotLabels returns the canonical slot grid.
func SlotLabels() []string {
	out := make([]string, len(slotLabels))
	copy(out, slotLabels)
	return out
}

// IsSlotLabel reports whether label is one of the fixed slots.
func IsSlotLabel(label string) bool {
	for _, known := range slotLabels {
		if known == label {
			return true
		}
	}
	return false
}

func slotStart(label string, date time.Time) (time.Time, bool) {
	parsed, err := time.Parse("03:04 PM", label)
	if err != nil {
		return time.Time{}, false
	}
	start := time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0,
		date.Location(),
	)
	return start, true
}

// SlotOpen reports whether the slot can still be booked for date as of now.
// A slot whose start has already passed wall-clock time is closed.
func SlotOpen(label string, date, now time.Time) bool {
	start, ok := slotStart(label, date)
	if !ok {
		return false
	}
	return start.After(now)
}

// SlotsFor renders the full grid with per-slot availability for date.
func SlotsFor(date, now time.Time) []Slot {
	out := make([]Slot, 0, len(slotLabels))
	for _, label := range slotLabels {
		out = append(out, Slot{
			Label:     label,
			Available: SlotOpen(label, date, now),
		})
	}
	return out
}
