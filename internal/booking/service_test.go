package booking

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/fixnest/fixnest-backend/internal/cart"
	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/fixnest/fixnest-backend/pkg/enums"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/logger"
	pkgredis "github.com/fixnest/fixnest-backend/pkg/redis"
	"github.com/google/uuid"
)

type memDraftKV struct {
	values map[string]string
}

func newMemDraftKV() *memDraftKV {
	return &memDraftKV{values: map[string]string{}}
}

func (m *memDraftKV) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return value, nil
}

func (m *memDraftKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	return nil
}

func (m *memDraftKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memDraftKV) WizardKey(session string) string {
	return "fn:wizard:" + session
}

type fakeCart struct {
	state   cart.State
	cleared bool
}

func (f *fakeCart) Get(context.Context, string) (cart.State, error) {
	return f.state, nil
}

func (f *fakeCart) Clear(context.Context, string) error {
	f.cleared = true
	f.state = cart.State{}
	return nil
}

type fakeLocker struct {
	held map[string]bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (f *fakeLocker) SetNX(_ context.Context, key string, _ any, _ time.Duration) (bool, error) {
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLocker) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.held, key)
	}
	return nil
}

func (f *fakeLocker) LockKey(name string) string {
	return "fn:lock:" + name
}

type fakePersister struct {
	bookings []*models.Booking
	err      error
}

func (f *fakePersister) CreateBooking(_ context.Context, booking *models.Booking) error {
	if f.err != nil {
		return f.err
	}
	booking.ID = uuid.New()
	f.bookings = append(f.bookings, booking)
	return nil
}

type fakeMailer struct {
	sent []*models.Booking
}

func (f *fakeMailer) SendBookingConfirmation(_ context.Context, booking *models.Booking) error {
	f.sent = append(f.sent, booking)
	return nil
}

type wizardHarness struct {
	svc     Service
	cart    *fakeCart
	locks   *fakeLocker
	persist *fakePersister
	mailer  *fakeMailer
	kv      *memDraftKV
}

func newWizardHarness(t *testing.T, state cart.State) *wizardHarness {
	t.Helper()
	kv := newMemDraftKV()
	drafts, err := NewDraftStore(kv, time.Hour)
	if err != nil {
		t.Fatalf("new draft store: %v", err)
	}
	h := &wizardHarness{
		cart:    &fakeCart{state: state},
		locks:   newFakeLocker(),
		persist: &fakePersister{},
		mailer:  &fakeMailer{},
		kv:      kv,
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(drafts, h.cart, NewRepository(nil), h.persist, h.locks, h.mailer, nil, logg, 30*time.Second)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	h.svc = svc
	return h
}

func cartWith(items ...cart.Item) cart.State {
	return cart.State{Items: items}
}

func TestAdvanceBlockedOnEmptyCart(t *testing.T) {
	h := newWizardHarness(t, cart.State{})
	ctx := context.Background()

	_, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	draft, err := h.svc.State(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if draft.Step != enums.StepCartReview {
		t.Fatalf("failed advance must not move the step, got %s", draft.Step)
	}
}

func TestAdvanceRejectsShortPhone(t *testing.T) {
	h := newWizardHarness(t, cartWith(cart.Item{SubServiceID: uuid.New(), Name: "Deep Clean", UnitPrice: 799, Quantity: 1}))
	ctx := context.Background()

	if _, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{}); err != nil {
		t.Fatalf("cart review: %v", err)
	}

	_, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{Contact: &ContactPayload{Phone: "123"}})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	draft, err := h.svc.State(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if draft.Step != enums.StepContact {
		t.Fatalf("expected to stay on contact, got %s", draft.Step)
	}
}

func TestBackKeepsEnteredData(t *testing.T) {
	h := newWizardHarness(t, cartWith(cart.Item{SubServiceID: uuid.New(), Name: "Deep Clean", UnitPrice: 799, Quantity: 1}))
	ctx := context.Background()

	if _, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{}); err != nil {
		t.Fatalf("cart review: %v", err)
	}
	if _, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{Contact: &ContactPayload{Phone: "9876543210"}}); err != nil {
		t.Fatalf("contact: %v", err)
	}

	draft, err := h.svc.Back(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("back: %v", err)
	}
	if draft.Step != enums.StepContact {
		t.Fatalf("expected contact after back from address, got %s", draft.Step)
	}
	if draft.Contact.Phone != "9876543210" {
		t.Fatal("back must keep entered data")
	}
}

func TestBackFromFirstStepRejected(t *testing.T) {
	h := newWizardHarness(t, cart.State{})

	_, err := h.svc.Back(context.Background(), "visitor-1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClosePreservesProgressBeforeConfirmation(t *testing.T) {
	h := newWizardHarness(t, cartWith(cart.Item{SubServiceID: uuid.New(), Name: "Deep Clean", UnitPrice: 799, Quantity: 1}))
	ctx := context.Background()

	if _, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{}); err != nil {
		t.Fatalf("cart review: %v", err)
	}
	if _, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{Contact: &ContactPayload{Phone: "9876543210"}}); err != nil {
		t.Fatalf("contact: %v", err)
	}

	draft, err := h.svc.Close(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if draft.Step != enums.StepAddress || draft.Contact.Phone != "9876543210" {
		t.Fatalf("pre-terminal close must preserve progress, got %+v", draft)
	}
	if h.cart.cleared {
		t.Fatal("pre-terminal close must not clear the cart")
	}
}

func TestFullWizardFlow(t *testing.T) {
	h := newWizardHarness(t, cartWith(
		cart.Item{SubServiceID: uuid.New(), Name: "AC Jet Service", UnitPrice: 599, Quantity: 1},
		cart.Item{SubServiceID: uuid.New(), Name: "Deep Clean", UnitPrice: 799, Quantity: 1},
	))
	ctx := context.Background()

	if _, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{}); err != nil {
		t.Fatalf("cart review: %v", err)
	}
	if _, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{Contact: &ContactPayload{Phone: "9876543210", Email: "visitor@example.in"}}); err != nil {
		t.Fatalf("contact: %v", err)
	}
	if _, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{Address: &AddressPayload{Region: "Andheri West", FlatNo: "4B", Landmark: "Near metro"}}); err != nil {
		t.Fatalf("address: %v", err)
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	draft, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{Schedule: &SchedulePayload{Date: tomorrow, Slot: "10:00 AM", Consent: true}})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if draft.Step != enums.StepConfirmation {
		t.Fatalf("expected confirmation, got %s", draft.Step)
	}

	if len(h.persist.bookings) != 1 {
		t.Fatalf("expected one persisted booking, got %d", len(h.persist.bookings))
	}
	booking := h.persist.bookings[0]
	if booking.TotalPrice != 1398 {
		t.Fatalf("expected total 1398, got %d", booking.TotalPrice)
	}
	if len(booking.Items) != 2 {
		t.Fatalf("expected two item snapshots, got %d", len(booking.Items))
	}
	if booking.ContactPhone != "9876543210" || booking.Region != "Andheri West" {
		t.Fatalf("booking missing wizard data: %+v", booking)
	}
	if len(h.mailer.sent) != 1 {
		t.Fatalf("expected one confirmation email, got %d", len(h.mailer.sent))
	}

	// Terminal close resets everything for the next booking.
	draft, err = h.svc.Close(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if draft.Step != enums.StepCartReview || draft.Contact.Phone != "" {
		t.Fatalf("terminal close must reset the draft, got %+v", draft)
	}
	if !h.cart.cleared {
		t.Fatal("terminal close must clear the cart")
	}
	if _, ok := h.kv.values[h.kv.WizardKey("visitor-1")]; ok {
		t.Fatal("terminal close must drop the stored draft")
	}
}

func TestSubmitFailureStaysOnSchedule(t *testing.T) {
	h := newWizardHarness(t, cartWith(cart.Item{SubServiceID: uuid.New(), Name: "Deep Clean", UnitPrice: 799, Quantity: 1}))
	h.persist.err = errors.New("db down")
	ctx := context.Background()

	if _, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{}); err != nil {
		t.Fatalf("cart review: %v", err)
	}
	if _, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{Contact: &ContactPayload{Phone: "9876543210"}}); err != nil {
		t.Fatalf("contact: %v", err)
	}
	if _, err := h.svc.Advance(ctx, "visitor-1", AdvanceInput{Address: &AddressPayload{Region: "Andheri West", FlatNo: "4B", Landmark: "Near metro"}}); err != nil {
		t.Fatalf("address: %v", err)
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	payload := AdvanceInput{Schedule: &SchedulePayload{Date: tomorrow, Slot: "10:00 AM", Consent: true}}

	_, err := h.svc.Advance(ctx, "visitor-1", payload)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	draft, err := h.svc.State(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if draft.Step != enums.StepSchedule {
		t.Fatalf("failed submit must stay on schedule, got %s", draft.Step)
	}

	// The lock was released, so a manual retry can go through.
	h.persist.err = nil
	draft, err = h.svc.Advance(ctx, "visitor-1", payload)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if draft.Step != enums.StepConfirmation {
		t.Fatalf("expected confirmation after retry, got %s", draft.Step)
	}
}
