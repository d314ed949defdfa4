package cart

import (
	"context"
	"fmt"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	"github.com/google/uuid"
)

// Service mutates a visitor's cart keyed by their session token.
type Service interface {
	Get(ctx context.Context, session string) (State, error)
	Add(ctx context.Context, session string, subServiceID uuid.UUID) (State, error)
	UpdateQuantity(ctx context.Context, session string, subServiceID uuid.UUID, quantity int) (State, error)
	Remove(ctx context.Context, session string, subServiceID uuid.UUID) (State, error)
	Clear(ctx context.Context, session string) error
}

// catalogLister re-prices cart lines from the live catalog.
type catalogLister interface {
	ListActiveSubServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.SubService, error)
}

type service struct {
	store   *Store
	catalog catalogLister
}

// NewService constructs the cart service.
func NewService(store *Store, catalog catalogLister) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog lister required")
	}
	return &service{store: store, catalog: catalog}, nil
}

func (s *service) Get(ctx context.Context, session string) (State, error) {
	state, err := s.store.Load(ctx, session)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return state, nil
}

// Add puts one unit of the sub-service in the cart. Adding a line that is
// already present increments its quantity by one; the name and unit price
// snapshots taken on first add are kept.
func (s *service) Add(ctx context.Context, session string, subServiceID uuid.UUID) (State, error) {
	state, err := s.store.Load(ctx, session)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	if line := state.find(subServiceID); line != nil {
		line.Quantity++
	} else {
		subs, err := s.catalog.ListActiveSubServicesByIDs(ctx, []uuid.UUID{subServiceID})
		if err != nil {
			return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sub-service")
		}
		if len(subs) == 0 {
			return State{}, pkgerrors.New(pkgerrors.CodeNotFound, "sub-service not found or inactive")
		}
		sub := subs[0]
		state.Items = append(state.Items, Item{
			SubServiceID: sub.ID,
			Name:         sub.Name,
			UnitPrice:    sub.EffectivePrice(),
			Quantity:     1,
		})
	}

	if err := s.store.Save(ctx, session, state); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return state, nil
}

// UpdateQuantity sets the line's quantity, clamped to a floor of one.
// Updating an absent line is a no-op, mirroring Remove. Use Remove to drop a
// line entirely.
func (s *service) UpdateQuantity(ctx context.Context, session string, subServiceID uuid.UUID, quantity int) (State, error) {
	state, err := s.store.Load(ctx, session)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	line := state.find(subServiceID)
	if line == nil {
		return state, nil
	}
	if quantity < 1 {
		quantity = 1
	}
	line.Quantity = quantity

	if err := s.store.Save(ctx, session, state); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return state, nil
}

// Remove drops the line; removing an absent line is a no-op.
func (s *service) Remove(ctx context.Context, session string, subServiceID uuid.UUID) (State, error) {
	state, err := s.store.Load(ctx, session)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	kept := state.Items[:0]
	for _, item := range state.Items {
		if item.SubServiceID != subServiceID {
			kept = append(kept, item)
		}
	}
	state.Items = kept

	if err := s.store.Save(ctx, session, state); err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return state, nil
}

func (s *service) Clear(ctx context.Context, session string) error {
	if err := s.store.Delete(ctx, session); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}
