package booking

import (
	"testing"
	"time"

	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
)

func detailFor(t *testing.T, err error, field string) string {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	return details[field]
}

func TestValidateContact(t *testing.T) {
	if err := validateContact(ContactPayload{Phone: "+91 98765 43210"}); err != nil {
		t.Fatalf("formatted phone with 12 digits should pass: %v", err)
	}

	err := validateContact(ContactPayload{Phone: "123"})
	if detailFor(t, err, "phone") == "" {
		t.Fatal("expected phone detail for a 3-digit phone")
	}

	err = validateContact(ContactPayload{Phone: ""})
	if detailFor(t, err, "phone") == "" {
		t.Fatal("expected phone detail for a missing phone")
	}

	err = validateContact(ContactPayload{Phone: "9876543210", Email: "not-an-email"})
	if detailFor(t, err, "email") == "" {
		t.Fatal("expected email detail for a malformed email")
	}

	if err := validateContact(ContactPayload{Phone: "9876543210", Email: "a@b.in"}); err != nil {
		t.Fatalf("valid optional email should pass: %v", err)
	}
}

func TestValidateAddress(t *testing.T) {
	if err := validateAddress(AddressPayload{Region: "Andheri West", FlatNo: "4B", Landmark: "Near metro"}); err != nil {
		t.Fatalf("valid address should pass: %v", err)
	}

	err := validateAddress(AddressPayload{Region: "A", FlatNo: "", Landmark: "x"})
	for _, field := range []string{"region", "flat_no", "landmark"} {
		if detailFor(t, err, field) == "" {
			t.Fatalf("expected %s detail", field)
		}
	}
}

func TestValidateSchedule(t *testing.T) {
	now := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.UTC)

	if _, err := validateSchedule(SchedulePayload{Date: "2026-03-11", Slot: "10:00 AM", Consent: true}, now); err != nil {
		t.Fatalf("tomorrow morning should pass: %v", err)
	}

	err := validateSchedule0(t, SchedulePayload{Date: "2026-03-09", Slot: "10:00 AM", Consent: true}, now)
	if detailFor(t, err, "date") == "" {
		t.Fatal("expected date detail for a past date")
	}

	err = validateSchedule0(t, SchedulePayload{Date: "2026-03-10", Slot: "02:00 PM", Consent: true}, now)
	if detailFor(t, err, "slot") == "" {
		t.Fatal("expected slot detail when the start has passed")
	}

	err = validateSchedule0(t, SchedulePayload{Date: "2026-03-11", Slot: "09:00 AM", Consent: true}, now)
	if detailFor(t, err, "slot") == "" {
		t.Fatal("expected slot detail for an unknown label")
	}

	err = validateSchedule0(t, SchedulePayload{Date: "2026-03-11", Slot: "10:00 AM", Consent: false}, now)
	if detailFor(t, err, "consent") == "" {
		t.Fatal("expected consent detail")
	}

	err = validateSchedule0(t, SchedulePayload{Date: "11-03-2026", Slot: "10:00 AM", Consent: true}, now)
	if detailFor(t, err, "date") == "" {
		t.Fatal("expected date detail for a malformed date")
	}
}

func validateSchedule0(t *testing.T, payload SchedulePayload, now time.Time) error {
	t.Helper()
	_, err := validateSchedule(payload, now)
	if err == nil {
		t.Fatalf("expected validation failure for %+v", payload)
	}
	return err
}
