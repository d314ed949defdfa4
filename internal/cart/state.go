package cart

import "github.com/google/uuid"

// Item is one sub-service line in a visitor's cart. Name and UnitPrice are
// snapshots taken when the line was added.
type Item struct {
	SubServiceID uuid.UUID `json:"sub_service_id"`
	Name         string    `json:"name"`
	UnitPrice    int       `json:"unit_price"`
	Quantity     int       `json:"quantity"`
}

// State is the whole cart for one session token.
type State struct {
	Items []Item `json:"items"`
}

// TotalPrice sums unit price times quantity across all lines.
func (s State) TotalPrice() int {
	total := 0
	for _, item := range s.Items {
		total += item.UnitPrice * item.Quantity
	}
	return total
}

// IsEmpty reports whether the cart holds no lines.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

func (s *State) find(subServiceID uuid.UUID) *Item {
	for i := range s.Items {
		if s.Items[i].SubServiceID == subServiceID {
			return &s.Items[i]
		}
	}
	return nil
}
