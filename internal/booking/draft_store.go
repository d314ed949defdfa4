package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgredis "github.com/fixnest/fixnest-backend/pkg/redis"
)

// draftKV is the slice of the redis client the draft store needs.
type draftKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	WizardKey(session string) string
}

// DraftStore keeps wizard drafts in Redis beside the cart, under the same
// sliding TTL.
type DraftStore struct {
	store draftKV
	ttl   time.Duration
}

// NewDraftStore constructs the Redis-backed draft store.
func NewDraftStore(store draftKV, ttl time.Duration) (*DraftStore, error) {
	if store == nil {
		return nil, fmt.Errorf("redis store required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("draft ttl must be positive")
	}
	return &DraftStore{store: store, ttl: ttl}, nil
}

// Load returns the draft for session, or a fresh one when none is stored.
func (s *DraftStore) Load(ctx context.Context, session string) (Draft, error) {
	raw, err := s.store.Get(ctx, s.store.WizardKey(session))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return NewDraft(), nil
		}
		return Draft{}, fmt.Errorf("redis: load draft: %w", err)
	}
	var draft Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return Draft{}, fmt.Errorf("decode draft: %w", err)
	}
	if !draft.Step.IsValid() {
		return NewDraft(), nil
	}
	return draft, nil
}

// Save persists the draft and resets the sliding TTL.
func (s *DraftStore) Save(ctx context.Context, session string, draft Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.store.Set(ctx, s.store.WizardKey(session), payload, s.ttl); err != nil {
		return fmt.Errorf("redis: save draft: %w", err)
	}
	return nil
}

// Delete removes the draft for session.
func (s *DraftStore) Delete(ctx context.Context, session string) error {
	if err := s.store.Del(ctx, s.store.WizardKey(session)); err != nil {
		return fmt.Errorf("redis: delete draft: %w", err)
	}
	return nil
}
