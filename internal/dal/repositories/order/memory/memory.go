package memoryrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
)

// OrderRepository is an in-memory order store. It backs single-process
// deployments and tests; the mutex gives the same check-then-act atomicity
// the Postgres adapter gets from its conditional update.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]order.Order
}

// NewOrderRepository creates a new in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]order.Order),
	}
}

// Insert appends a new order.
func (r *OrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[o.ID] = cloneOrder(o)

	return o, nil
}

// GetByID returns the order or order.ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}

	out := cloneOrder(o)

	return &out, nil
}

// Query lists orders newest first, optionally filtered by merchant.
func (r *OrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []order.Order{}
	for _, o := range r.orders {
		if filter.MerchantID != "" && filter.MerchantID != "all" && o.MerchantID != filter.MerchantID {
			continue
		}
		result = append(result, cloneOrder(o))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []order.Order{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

// UpdateStatus applies the patch only if the stored status still equals from.
func (r *OrderRepository) UpdateStatus(
	ctx context.Context,
	id string,
	from order.Status,
	patch order.StatusPatch,
) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}

	if o.Status != from {
		out := cloneOrder(o)

		return &out, order.ErrStatusConflict
	}

	o.Status = patch.Status
	o.StatusUpdatedAt = patch.StatusUpdatedAt
	if patch.UserPhone != nil {
		o.UserPhone = *patch.UserPhone
	}
	if patch.MerchantSLADeadline != nil {
		deadline := *patch.MerchantSLADeadline
		o.MerchantSLADeadline = &deadline
	}
	if patch.AssemblyDeadline != nil {
		deadline := *patch.AssemblyDeadline
		o.AssemblyDeadline = &deadline
	}

	r.orders[id] = o
	out := cloneOrder(o)

	return &out, nil
}

// cloneOrder copies an order so callers never observe a torn update through
// a shared slice or pointer.
func cloneOrder(o order.Order) order.Order {
	out := o
	out.Items = append([]order.Item(nil), o.Items...)
	if o.ExpiresAt != nil {
		t := *o.ExpiresAt
		out.ExpiresAt = &t
	}
	if o.MerchantSLADeadline != nil {
		t := *o.MerchantSLADeadline
		out.MerchantSLADeadline = &t
	}
	if o.AssemblyDeadline != nil {
		t := *o.AssemblyDeadline
		out.AssemblyDeadline = &t
	}

	return out
}
