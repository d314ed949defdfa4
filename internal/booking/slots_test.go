package booking

import (
	"testing"
	"time"
)

func TestSlotsForDisablesPassedStarts(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, time.March, 10, 14, 30, 0, 0, loc)
	today := time.Date(2026, time.March, 10, 0, 0, 0, 0, loc)

	slots := SlotsFor(today, now)
	if len(slots) != 11 {
		t.Fatalf("expected 11 slots, got %d", len(slots))
	}

	byLabel := map[string]bool{}
	for _, slot := range slots {
		byLabel[slot.Label] = slot.Available
	}

	for _, label := range []string{"10:00 AM", "12:00 PM", "02:00 PM"} {
		if byLabel[label] {
			t.Fatalf("slot %s starts before 14:30 and must be disabled", label)
		}
	}
	for _, label := range []string{"03:00 PM", "08:00 PM"} {
		if !byLabel[label] {
			t.Fatalf("slot %s starts after 14:30 and must be available", label)
		}
	}
}

func TestSlotsForFutureDateAllOpen(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, time.March, 10, 23, 0, 0, 0, loc)
	tomorrow := time.Date(2026, time.March, 11, 0, 0, 0, 0, loc)

	for _, slot := range SlotsFor(tomorrow, now) {
		if !slot.Available {
			t.Fatalf("slot %s on a future date must be available", slot.Label)
		}
	}
}

func TestSlotsForPastDateAllClosed(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, loc)
	yesterday := time.Date(2026, time.March, 9, 0, 0, 0, 0, loc)

	for _, slot := range SlotsFor(yesterday, now) {
		if slot.Available {
			t.Fatalf("slot %s on a past date must be closed", slot.Label)
		}
	}
}

func TestIsSlotLabel(t *testing.T) {
	if !IsSlotLabel("10:00 AM") {
		t.Fatal("10:00 AM is a valid slot")
	}
	if IsSlotLabel("09:00 AM") {
		t.Fatal("09:00 AM is before opening and must be rejected")
	}
	if IsSlotLabel("10:30 AM") {
		t.Fatal("half-hour labels are not offered")
	}
}
