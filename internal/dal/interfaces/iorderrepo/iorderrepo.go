package iorderrepo

import (
	"context"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
)

// IOrderRepository defines the order store consumed by the lifecycle engine.
type IOrderRepository interface {
	// Insert appends a new order. The order id must already be assigned.
	Insert(ctx context.Context, o order.Order) (order.Order, error)

	// GetByID returns the order or order.ErrNotFound.
	GetByID(ctx context.Context, id string) (*order.Order, error)

	// Query lists orders newest first, optionally filtered by merchant.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)

	// UpdateStatus applies patch only if the stored status still equals
	// from, returning the updated order. It returns order.ErrNotFound for a
	// missing id and order.ErrStatusConflict when the status no longer
	// matches.
	UpdateStatus(ctx context.Context, id string, from order.Status, patch order.StatusPatch) (*order.Order, error)
}
