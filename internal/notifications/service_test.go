package notifications

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/fixnest/fixnest-backend/pkg/logger"
	"github.com/google/uuid"
)

type fakeSender struct {
	sent []Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestService(t *testing.T, sender *fakeSender, opsInbox string) *Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(sender, opsInbox, nil, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func sampleBooking(email string) *models.Booking {
	return &models.Booking{
		ID:           uuid.New(),
		ContactPhone: "9876543210",
		ContactEmail: email,
		Region:       "Andheri West",
		FlatNo:       "4B",
		Landmark:     "Near metro",
		ScheduleDate: time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		ScheduleSlot: "10:00 AM",
		TotalPrice:   1398,
		Items: []models.BookingItem{
			{Name: "AC Jet Service", UnitPrice: 599, Quantity: 1},
			{Name: "Deep Clean", UnitPrice: 799, Quantity: 1},
		},
	}
}

func TestBookingConfirmationGoesToVisitorAndOps(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(t, sender, "ops@fixnest.in")

	if err := svc.SendBookingConfirmation(context.Background(), sampleBooking("visitor@example.in")); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected visitor + ops emails, got %d", len(sender.sent))
	}
	if sender.sent[0].To[0] != "visitor@example.in" || sender.sent[1].To[0] != "ops@fixnest.in" {
		t.Fatalf("unexpected recipients: %v %v", sender.sent[0].To, sender.sent[1].To)
	}
	if !strings.Contains(sender.sent[0].Body, "Total: Rs 1398") {
		t.Fatalf("body missing total: %s", sender.sent[0].Body)
	}
}

func TestBookingConfirmationSkipsVisitorWithoutEmail(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(t, sender, "ops@fixnest.in")

	if err := svc.SendBookingConfirmation(context.Background(), sampleBooking("")); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected ops email only, got %d", len(sender.sent))
	}
	if sender.sent[0].To[0] != "ops@fixnest.in" {
		t.Fatalf("unexpected recipient: %v", sender.sent[0].To)
	}
}

func TestBookingConfirmationSurfacesFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	svc := newTestService(t, sender, "ops@fixnest.in")

	if err := svc.SendBookingConfirmation(context.Background(), sampleBooking("visitor@example.in")); err == nil {
		t.Fatal("expected error when smtp is down")
	}
}

func TestContactMessage(t *testing.T) {
	sender := &fakeSender{}
	svc := newTestService(t, sender, "ops@fixnest.in")

	err := svc.SendContactMessage(context.Background(), ContactMessage{
		Name:    "Asha",
		Phone:   "9876543210",
		Email:   "asha@example.in",
		Message: "Do you cover Thane?",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].Body, "Do you cover Thane?") {
		t.Fatalf("body missing message: %s", sender.sent[0].Body)
	}
}
