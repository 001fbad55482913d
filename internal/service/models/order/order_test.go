package order

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		order Order
		err   error
	}{
		{
			name: "valid",
			order: Order{
				Items: []Item{
					{ProductID: "p1", Name: "Margherita Pizza", Price: 65, Qty: 2},
					{ProductID: "p2", Name: "Pepperoni Pizza", Price: 85, Qty: 1},
				},
				Total: 215,
			},
		},
		{
			name:  "empty items",
			order: Order{Total: 0},
			err:   ErrEmptyItems,
		},
		{
			name: "zero quantity",
			order: Order{
				Items: []Item{{ProductID: "p1", Price: 65, Qty: 0}},
				Total: 0,
			},
			err: ErrInvalidQty,
		},
		{
			name: "total mismatch",
			order: Order{
				Items: []Item{{ProductID: "p1", Price: 65, Qty: 1}},
				Total: 100,
			},
			err: ErrTotalMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.order.Validate(); err != tt.err {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != 9 {
			t.Fatalf("expected 9 characters, got %d (%q)", len(id), id)
		}
		for _, c := range id {
			if !strings.ContainsRune(idAlphabet, c) {
				t.Fatalf("unexpected character %q in id %q", c, id)
			}
		}
		if seen[id] {
			t.Fatalf("duplicate id %q after %d draws", id, i)
		}
		seen[id] = true
	}
}
