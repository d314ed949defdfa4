package reviews

import (
	"testing"

	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/google/uuid"
)

func floatPtr(v float64) *float64 { return &v }

func TestFormatAverage(t *testing.T) {
	if got := FormatAverage(nil); got != "0.00" {
		t.Fatalf("expected 0.00 for no reviews, got %s", got)
	}
	if got := FormatAverage(floatPtr(4)); got != "4.00" {
		t.Fatalf("expected 4.00, got %s", got)
	}
	if got := FormatAverage(floatPtr(4.3333333)); got != "4.33" {
		t.Fatalf("expected 4.33, got %s", got)
	}
	if got := FormatAverage(floatPtr(4.675)); got != "4.68" {
		t.Fatalf("expected 4.68, got %s", got)
	}
}

func TestValidateRating(t *testing.T) {
	for _, rating := range []int{1, 3, 5} {
		if err := ValidateRating(rating); err != nil {
			t.Fatalf("rating %d should validate: %v", rating, err)
		}
	}
	for _, rating := range []int{0, -1, 6} {
		err := ValidateRating(rating)
		if err == nil {
			t.Fatalf("rating %d should be rejected", rating)
		}
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	}
}

func TestValidateOwnerExactlyOne(t *testing.T) {
	id := uuid.New()

	if err := validateOwner(&id, nil); err != nil {
		t.Fatalf("service owner should validate: %v", err)
	}
	if err := validateOwner(nil, &id); err != nil {
		t.Fatalf("sub-service owner should validate: %v", err)
	}
	if err := validateOwner(nil, nil); err == nil {
		t.Fatal("expected neither owner to be rejected")
	}
	if err := validateOwner(&id, &id); err == nil {
		t.Fatal("expected both owners to be rejected")
	}
}
