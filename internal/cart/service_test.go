package cart

import (
	"context"
	"testing"
	"time"

	"github.com/fixnest/fixnest-backend/pkg/db/models"
	pkgerrors "github.com/fixnest/fixnest-backend/pkg/errors"
	pkgredis "github.com/fixnest/fixnest-backend/pkg/redis"
	"github.com/google/uuid"
)

type memoryKV struct {
	values map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", pkgredis.Nil
	}
	return value, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	return nil
}

func (m *memoryKV) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryKV) CartKey(session string) string {
	return "fn:cart:" + session
}

type fakeCatalog struct {
	subs map[uuid.UUID]models.SubService
}

func (f *fakeCatalog) ListActiveSubServicesByIDs(_ context.Context, ids []uuid.UUID) ([]models.SubService, error) {
	var out []models.SubService
	for _, id := range ids {
		if sub, ok := f.subs[id]; ok {
			out = append(out, sub)
		}
	}
	return out, nil
}

func intPtr(v int) *int { return &v }

func newTestService(t *testing.T, subs ...models.SubService) Service {
	t.Helper()
	store, err := NewStore(newMemoryKV(), time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	catalog := &fakeCatalog{subs: map[uuid.UUID]models.SubService{}}
	for _, sub := range subs {
		catalog.subs[sub.ID] = sub
	}
	svc, err := NewService(store, catalog)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAddSnapshotsEffectivePrice(t *testing.T) {
	sub := models.SubService{
		ID:              uuid.New(),
		Name:            "AC Jet Service",
		Price:           599,
		DiscountedPrice: intPtr(499),
	}
	svc := newTestService(t, sub)
	ctx := context.Background()

	state, err := svc.Add(ctx, "visitor-1", sub.ID)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(state.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(state.Items))
	}
	line := state.Items[0]
	if line.Name != "AC Jet Service" || line.UnitPrice != 499 || line.Quantity != 1 {
		t.Fatalf("unexpected line snapshot: %+v", line)
	}
}

func TestAddDuplicateIncrementsQuantity(t *testing.T) {
	sub := models.SubService{ID: uuid.New(), Name: "Deep Clean", Price: 799}
	svc := newTestService(t, sub)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "visitor-1", sub.ID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	state, err := svc.Add(ctx, "visitor-1", sub.ID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(state.Items) != 1 {
		t.Fatalf("duplicate add must not create a second line, got %d", len(state.Items))
	}
	if state.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", state.Items[0].Quantity)
	}
}

func TestAddUnknownSubService(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Add(context.Background(), "visitor-1", uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	sub := models.SubService{ID: uuid.New(), Name: "Deep Clean", Price: 799}
	svc := newTestService(t, sub)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "visitor-1", sub.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	state, err := svc.UpdateQuantity(ctx, "visitor-1", sub.ID, 0)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if state.Items[0].Quantity != 1 {
		t.Fatalf("quantity must clamp to 1, got %d", state.Items[0].Quantity)
	}

	state, err = svc.UpdateQuantity(ctx, "visitor-1", sub.ID, 4)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if state.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", state.Items[0].Quantity)
	}
}

func TestUpdateQuantityAbsentLineIsNoop(t *testing.T) {
	sub := models.SubService{ID: uuid.New(), Name: "Deep Clean", Price: 799}
	svc := newTestService(t, sub)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "visitor-1", sub.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	state, err := svc.UpdateQuantity(ctx, "visitor-1", uuid.New(), 2)
	if err != nil {
		t.Fatalf("update absent: %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].Quantity != 1 {
		t.Fatalf("absent update must leave cart intact, got %+v", state.Items)
	}
}

func TestRemoveAbsentLineIsNoop(t *testing.T) {
	sub := models.SubService{ID: uuid.New(), Name: "Deep Clean", Price: 799}
	svc := newTestService(t, sub)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "visitor-1", sub.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	state, err := svc.Remove(ctx, "visitor-1", uuid.New())
	if err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if len(state.Items) != 1 {
		t.Fatalf("absent remove must leave cart intact, got %d lines", len(state.Items))
	}

	state, err = svc.Remove(ctx, "visitor-1", sub.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(state.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(state.Items))
	}
}

func TestTotalPriceAndClear(t *testing.T) {
	subA := models.SubService{ID: uuid.New(), Name: "AC Jet Service", Price: 599}
	subB := models.SubService{ID: uuid.New(), Name: "Deep Clean", Price: 799}
	svc := newTestService(t, subA, subB)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "visitor-1", subA.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, "visitor-1", subB.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	state, err := svc.UpdateQuantity(ctx, "visitor-1", subA.ID, 2)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if got := state.TotalPrice(); got != 2*599+799 {
		t.Fatalf("expected total %d, got %d", 2*599+799, got)
	}

	if err := svc.Clear(ctx, "visitor-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	state, err = svc.Get(ctx, "visitor-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !state.IsEmpty() {
		t.Fatal("expected empty cart after clear")
	}
}
