package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/fixnest/fixnest-backend/internal/cart"
	"github.com/fixnest/fixnest-backend/pkg/db"
	"github.com/fixnest/fixnest-backend/pkg/db/models"
	"github.com/fixnest/fixnest-backend/pkg/enums"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/fixnest/fixnest-backend/pkg/logger"
	"github.com/fixnest/fixnest-backend/pkg/metrics"
	"github.com/fixnest/fixnest-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service drives the five-step booking wizard and the admin booking views.
type Service interface {
	State(ctx context.Context, session string) (Draft, error)
	Advance(ctx context.Context, session string, input AdvanceInput) (Draft, error)
	Back(ctx context.Context, session string) (Draft, error)
	Close(ctx context.Context, session string) (Draft, error)
	Slots(date time.Time) []Slot

	ListBookings(ctx context.Context, params pagination.Params) ([]models.Booking, string, error)
}

// AdvanceInput carries the payload for whichever step the draft sits on.
// Only the field matching the current step is read.
type AdvanceInput struct {
	Contact  *ContactPayload  `json:"contact"`
	Address  *AddressPayload  `json:"address"`
	Schedule *SchedulePayload `json:"schedule"`
}

// cartAccessor is the slice of the cart service the wizard needs.
type cartAccessor interface {
	Get(ctx context.Context, session string) (cart.State, error)
	Clear(ctx context.Context, session string) error
}

// locker serializes submissions per session.
type locker interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	LockKey(name string) string
}

// confirmationSender dispatches the booking confirmation best-effort.
type confirmationSender interface {
	SendBookingConfirmation(ctx context.Context, booking *models.Booking) error
}

// Persister writes a submitted booking with its item snapshots.
type Persister interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
}

type txPersister struct {
	dbClient *db.Client
	repo     *Repository
}

// NewTxPersister wraps the repository so the booking and its items land in
// one transaction.
func NewTxPersister(dbClient *db.Client, repo *Repository) (Persister, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	return &txPersister{dbClient: dbClient, repo: repo}, nil
}

func (p *txPersister) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return p.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := p.repo.WithTx(tx).Create(ctx, booking)
		return err
	})
}

type service struct {
	drafts  *DraftStore
	carts   cartAccessor
	repo    *Repository
	persist Persister
	locks   locker
	mailer  confirmationSender
	metrics *metrics.DomainMetrics
	logg    *logger.Logger
	lockTTL time.Duration
	now     func() time.Time
}

// NewService constructs the booking service. mailer may be nil when SMTP is
// not configured; confirmations are then skipped.
func NewService(
	drafts *DraftStore,
	carts cartAccessor,
	repo *Repository,
	persist Persister,
	locks locker,
	mailer confirmationSender,
	domainMetrics *metrics.DomainMetrics,
	logg *logger.Logger,
	lockTTL time.Duration,
) (Service, error) {
	if drafts == nil {
		return nil, fmt.Errorf("draft store required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart accessor required")
	}
	if repo == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if persist == nil {
		return nil, fmt.Errorf("booking persister required")
	}
	if locks == nil {
		return nil, fmt.Errorf("locker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if lockTTL <= 0 {
		return nil, fmt.Errorf("submit lock ttl must be positive")
	}
	return &service{
		drafts:  drafts,
		carts:   carts,
		repo:    repo,
		persist: persist,
		locks:   locks,
		mailer:  mailer,
		metrics: domainMetrics,
		logg:    logg,
		lockTTL: lockTTL,
		now:     time.Now,
	}, nil
}

func (s *service) State(ctx context.Context, session string) (Draft, error) {
	draft, err := s.drafts.Load(ctx, session)
	if err != nil {
		return Draft{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load draft")
	}
	return draft, nil
}

// Advance validates the current step's payload and moves the draft forward.
// A validation failure leaves the draft untouched. Advancing from schedule
// submits the booking.
func (s *service) Advance(ctx context.Context, session string, input AdvanceInput) (Draft, error) {
	draft, err := s.drafts.Load(ctx, session)
	if err != nil {
		return Draft{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load draft")
	}

	switch draft.Step {
	case enums.StepCartReview:
		state, err := s.carts.Get(ctx, session)
		if err != nil {
			return Draft{}, err
		}
		if state.IsEmpty() {
			return Draft{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty").
				WithDetails(map[string]string{"cart": "add at least one service before booking"})
		}

	case enums.StepContact:
		if input.Contact == nil {
			return Draft{}, pkgerrors.New(pkgerrors.CodeValidation, "contact payload required")
		}
		if err := validateContact(*input.Contact); err != nil {
			return Draft{}, err
		}
		draft.Contact = *input.Contact

	case enums.StepAddress:
		if input.Address == nil {
			return Draft{}, pkgerrors.New(pkgerrors.CodeValidation, "address payload required")
		}
		if err := validateAddress(*input.Address); err != nil {
			return Draft{}, err
		}
		draft.Address = *input.Address

	case enums.StepSchedule:
		if input.Schedule == nil {
			return Draft{}, pkgerrors.New(pkgerrors.CodeValidation, "schedule payload required")
		}
		date, err := validateSchedule(*input.Schedule, s.now())
		if err != nil {
			return Draft{}, err
		}
		draft.Schedule = *input.Schedule
		return s.submit(ctx, session, draft, date)

	case enums.StepConfirmation:
		return Draft{}, pkgerrors.New(pkgerrors.CodeValidation, "booking already confirmed")

	default:
		return Draft{}, pkgerrors.New(pkgerrors.CodeInternal, "unknown wizard step")
	}

	draft.Step = draft.Step.Next()
	if err := s.drafts.Save(ctx, session, draft); err != nil {
		return Draft{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save draft")
	}
	return draft, nil
}

// submit persists the booking from the cart and the draft, then advances to
// confirmation. A Redis SETNX lock keeps a double-submitting client from
// inserting twice; on persistence failure the lock is released and the draft
// stays on schedule so the visitor can retry.
func (s *service) submit(ctx context.Context, session string, draft Draft, date time.Time) (Draft, error) {
	lockKey := s.locks.LockKey("submit:" + session)
	acquired, err := s.locks.SetNX(ctx, lockKey, "1", s.lockTTL)
	if err != nil {
		return Draft{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: submit lock")
	}
	if !acquired {
		return Draft{}, pkgerrors.New(pkgerrors.CodeConflict, "a submission is already in progress")
	}

	state, err := s.carts.Get(ctx, session)
	if err != nil {
		s.releaseLock(ctx, lockKey)
		return Draft{}, err
	}
	if state.IsEmpty() {
		s.releaseLock(ctx, lockKey)
		return Draft{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty").
			WithDetails(map[string]string{"cart": "add at least one service before booking"})
	}

	booking := &models.Booking{
		ContactPhone: draft.Contact.Phone,
		ContactEmail: draft.Contact.Email,
		Region:       draft.Address.Region,
		FlatNo:       draft.Address.FlatNo,
		Landmark:     draft.Address.Landmark,
		ScheduleDate: date,
		ScheduleSlot: draft.Schedule.Slot,
		TotalPrice:   state.TotalPrice(),
	}
	for _, item := range state.Items {
		booking.Items = append(booking.Items, models.BookingItem{
			SubServiceID: item.SubServiceID,
			Name:         item.Name,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
		})
	}

	if err := s.persist.CreateBooking(ctx, booking); err != nil {
		s.releaseLock(ctx, lockKey)
		return Draft{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert booking")
	}

	if s.metrics != nil {
		s.metrics.IncBookingCreated()
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"booking_id":  booking.ID.String(),
		"total_price": booking.TotalPrice,
		"items":       len(booking.Items),
	}), "booking created")

	if s.mailer != nil {
		if err := s.mailer.SendBookingConfirmation(ctx, booking); err != nil {
			s.logg.Error(ctx, "booking confirmation email failed", err)
		}
	}

	draft.Step = enums.StepConfirmation
	if err := s.drafts.Save(ctx, session, draft); err != nil {
		return Draft{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save draft")
	}
	return draft, nil
}

func (s *service) releaseLock(ctx context.Context, key string) {
	if err := s.locks.Del(ctx, key); err != nil {
		s.logg.Error(ctx, "release submit lock failed", err)
	}
}

// Back steps the draft backwards, keeping everything entered so far. The
// first and terminal steps have no backward transition.
func (s *service) Back(ctx context.Context, session string) (Draft, error) {
	draft, err := s.drafts.Load(ctx, session)
	if err != nil {
		return Draft{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load draft")
	}
	prev := draft.Step.Prev()
	if prev == draft.Step {
		return Draft{}, pkgerrors.New(pkgerrors.CodeValidation, "cannot go back from this step")
	}
	draft.Step = prev
	if err := s.drafts.Save(ctx, session, draft); err != nil {
		return Draft{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save draft")
	}
	return draft, nil
}

// Close dismisses the wizard dialog. At confirmation it clears the cart and
// resets the draft; any earlier step keeps all progress so reopening
// resumes.
func (s *service) Close(ctx context.Context, session string) (Draft, error) {
	draft, err := s.drafts.Load(ctx, session)
	if err != nil {
		return Draft{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load draft")
	}
	if draft.Step != enums.StepConfirmation {
		return draft, nil
	}

	if err := s.carts.Clear(ctx, session); err != nil {
		return Draft{}, err
	}
	// Dropping the key resets the wizard: Load hands out a fresh draft when
	// none is stored.
	if err := s.drafts.Delete(ctx, session); err != nil {
		return Draft{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete draft")
	}
	return NewDraft(), nil
}

func (s *service) Slots(date time.Time) []Slot {
	return SlotsFor(date, s.now())
}

func (s *service) ListBookings(ctx context.Context, params pagination.Params) ([]models.Booking, string, error) {
	rows, next, err := s.repo.List(ctx, params)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, "", err
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list bookings")
	}
	return rows, next, nil
}
