package booking

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/fixnest/fixnest-backend/pkg/enums"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// scheduleDateLayout is the wire format for the wizard's schedule date.
const scheduleDateLayout = "2006-01-02"

var validate = validator.New()

// ContactPayload is the data the contact step collects.
type ContactPayload struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// AddressPayload is the data the address step collects.
type AddressPayload struct {
	Region   string `json:"region"`
	FlatNo   string `json:"flat_no"`
	Landmark string `json:"landmark"`
}

// SchedulePayload is the data the schedule step collects. Consent covers the
// service terms and must be ticked before submission.
type SchedulePayload struct {
	Date    string `json:"date"`
	Slot    string `json:"slot"`
	Consent bool   `json:"consent"`
}

// Draft is the wizard's session state: the current step plus everything the
// visitor has entered so far. It lives in Redis beside the cart, so
// reopening the dialog resumes where the visitor left off.
type Draft struct {
	Step     enums.WizardStep `json:"step"`
	Contact  ContactPayload   `json:"contact"`
	Address  AddressPayload   `json:"address"`
	Schedule SchedulePayload  `json:"schedule"`
}

// NewDraft returns a fresh draft at the first step.
func NewDraft() Draft {
	return Draft{Step: enums.StepCartReview}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func validateContact(payload ContactPayload) error {
	details := map[string]string{}
	if strings.TrimSpace(payload.Phone) == "" {
		details["phone"] = "phone is required"
	} else if countDigits(payload.Phone) < 10 {
		details["phone"] = "phone must contain at least 10 digits"
	}
	if payload.Email != "" {
		if err := validate.Var(payload.Email, "email"); err != nil {
			details["email"] = "email must be a valid address"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "contact details invalid").WithDetails(details)
	}
	return nil
}

func validateAddress(payload AddressPayload) error {
	details := map[string]string{}
	if len(strings.TrimSpace(payload.Region)) < 2 {
		details["region"] = "region must be at least 2 characters"
	}
	if len(strings.TrimSpace(payload.FlatNo)) < 1 {
		details["flat_no"] = "flat/house number is required"
	}
	if len(strings.TrimSpace(payload.Landmark)) < 2 {
		details["landmark"] = "landmark must be at least 2 characters"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "address details invalid").WithDetails(details)
	}
	return nil
}

func validateSchedule(payload SchedulePayload, now time.Time) (time.Time, error) {
	details := map[string]string{}

	date, err := time.ParseInLocation(scheduleDateLayout, payload.Date, now.Location())
	if err != nil {
		details["date"] = fmt.Sprintf("date must be in %s format", scheduleDateLayout)
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if date.Before(today) {
			details["date"] = "date cannot be in the past"
		}
	}

	if !IsSlotLabel(payload.Slot) {
		details["slot"] = "slot is not one of the offered windows"
	} else if err == nil && !SlotOpen(payload.Slot, date, now) {
		details["slot"] = "slot has already passed"
	}

	if !payload.Consent {
		details["consent"] = "consent is required"
	}

	if len(details) > 0 {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "schedule details invalid").WithDetails(details)
	}
	return date, nil
}
