package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgredis "github.com/fixnest/fixnest-backend/pkg/redis"
)

// kv is the slice of the redis client the cart store needs.
type kv interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(session string) string
}

// Store keeps cart state in Redis keyed by the visitor session token. Every
// write refreshes the TTL so active carts outlive the sliding window.
type Store struct {
	store kv
	ttl   time.Duration
}

// NewStore constructs the Redis-backed cart store.
func NewStore(store kv, ttl time.Duration) (*Store, error) {
	if store == nil {
		return nil, fmt.Errorf("redis store required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &Store{store: store, ttl: ttl}, nil
}

// Load returns the cart for session, or an empty cart when none is stored.
func (s *Store) Load(ctx context.Context, session string) (State, error) {
	raw, err := s.store.Get(ctx, s.store.CartKey(session))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("redis: load cart: %w", err)
	}
	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return State{}, fmt.Errorf("decode cart state: %w", err)
	}
	return state, nil
}

// Save persists the cart and resets the sliding TTL.
func (s *Store) Save(ctx context.Context, session string, state State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode cart state: %w", err)
	}
	if err := s.store.Set(ctx, s.store.CartKey(session), payload, s.ttl); err != nil {
		return fmt.Errorf("redis: save cart: %w", err)
	}
	return nil
}

// Delete removes the cart for session.
func (s *Store) Delete(ctx context.Context, session string) error {
	if err := s.store.Del(ctx, s.store.CartKey(session)); err != nil {
		return fmt.Errorf("redis: delete cart: %w", err)
	}
	return nil
}
