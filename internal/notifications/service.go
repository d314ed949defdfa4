package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/logger"
	"github.com/fixnest/fixnest-backend/pkg/metrics"
)

// Email kinds as they appear in the emails_sent/emails_failed metrics.
const (
	kindBookingConfirmation = "booking_confirmation"
	kindContactForm         = "contact_form"
	kindComplaint           = "complaint"
)

// ContactMessage is a storefront contact-form submission.
type ContactMessage struct {
	Name    string
	Phone   string
	Email   string
	Message string
}

// ComplaintMessage is a storefront complaint-form submission.
type ComplaintMessage struct {
	Name      string
	Phone     string
	Email     string
	BookingID string
	Message   string
}

// Service routes the three message kinds to the ops inbox and, for booking
// confirmations, the visitor.
type Service struct {
	sender   Sender
	opsInbox string
	metrics  *metrics.DomainMetrics
	logg     *logger.Logger
}

// NewService constructs the notification service.
func NewService(sender Sender, opsInbox string, domainMetrics *metrics.DomainMetrics, logg *logger.Logger) (*Service, error) {
	if sender == nil {
		return nil, fmt.Errorf("sender required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{sender: sender, opsInbox: opsInbox, metrics: domainMetrics, logg: logg}, nil
}

func (s *Service) send(ctx context.Context, kind string, msg Message) error {
	err := s.sender.Send(ctx, msg)
	if s.metrics != nil {
		if err != nil {
			s.metrics.IncEmailFailed(kind)
		} else {
			s.metrics.IncEmailSent(kind)
		}
	}
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "email_kind", kind), "email dispatch failed", err)
		return err
	}
	return nil
}

// SendBookingConfirmation mails the visitor (when they left an email) and
// always the ops inbox. The first failure is returned; callers treat it as
// best-effort.
func (s *Service) SendBookingConfirmation(ctx context.Context, booking *models.Booking) error {
	if booking == nil {
		return fmt.Errorf("booking required")
	}
	body := bookingConfirmationBody(booking)

	var firstErr error
	if booking.ContactEmail != "" {
		msg := Message{
			To:      []string{booking.ContactEmail},
			Subject: "Your FixNest booking is confirmed",
			Body:    body,
		}
		if err := s.send(ctx, kindBookingConfirmation, msg); err != nil {
			firstErr = err
		}
	}
	if s.opsInbox != "" {
		msg := Message{
			To:      []string{s.opsInbox},
			Subject: fmt.Sprintf("New booking %s", booking.ID),
			Body:    body,
		}
		if err := s.send(ctx, kindBookingConfirmation, msg); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SendContactMessage forwards a contact-form submission to the ops inbox.
func (s *Service) SendContactMessage(ctx context.Context, input ContactMessage) error {
	if s.opsInbox == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "ops inbox is not configured")
	}
	body := fmt.Sprintf(
		"Name: %s\nPhone: %s\nEmail: %s\n\n%s\n",
		input.Name, input.Phone, input.Email, input.Message,
	)
	msg := Message{
		To:      []string{s.opsInbox},
		Subject: fmt.Sprintf("Contact form: %s", input.Name),
		Body:    body,
	}
	if err := s.send(ctx, kindContactForm, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send contact message")
	}
	return nil
}

// SendComplaint forwards a complaint-form submission to the ops inbox.
func (s *Service) SendComplaint(ctx context.Context, input ComplaintMessage) error {
	if s.opsInbox == "" {
		return pkgerrors.New(pkgerrors.CodeDependency, "ops inbox is not configured")
	}
	body := fmt.Sprintf(
		"Name: %s\nPhone: %s\nEmail: %s\nBooking: %s\n\n%s\n",
		input.Name, input.Phone, input.Email, input.BookingID, input.Message,
	)
	msg := Message{
		To:      []string{s.opsInbox},
		Subject: fmt.Sprintf("Complaint: %s", input.Name),
		Body:    body,
	}
	if err := s.send(ctx, kindComplaint, msg); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send complaint")
	}
	return nil
}

func bookingConfirmationBody(booking *models.Booking) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking %s\n\n", booking.ID)
	fmt.Fprintf(&b, "Scheduled: %s at %s\n", booking.ScheduleDate.Format("02 Jan 2006"), booking.ScheduleSlot)
	fmt.Fprintf(&b, "Phone: %s\n", booking.ContactPhone)
	fmt.Fprintf(&b, "Address: %s, %s (near %s)\n\n", booking.FlatNo, booking.Region, booking.Landmark)
	for _, item := range booking.Items {
		fmt.Fprintf(&b, "  %dx %s - Rs %d\n", item.Quantity, item.Name, item.UnitPrice*item.Quantity)
	}
	fmt.Fprintf(&b, "\nTotal: Rs %d\n", booking.TotalPrice)
	return b.String()
}
