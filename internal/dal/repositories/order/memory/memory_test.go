package memoryrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
)

func newTestOrder(id string, status order.Status, createdAt time.Time) order.Order {
	return order.Order{
		ID:              id,
		MerchantID:      "m1",
		Items:           []order.Item{{ProductID: "p1", Name: "Pizza", Price: 65, Qty: 1}},
		Total:           65,
		Status:          status,
		CreatedAt:       createdAt,
		StatusUpdatedAt: createdAt,
	}
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo := NewOrderRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, order.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	repo := NewOrderRepository()
	now := time.Now()
	_, _ = repo.Insert(context.Background(), newTestOrder("A1", order.StatusPendingConfirm, now))

	updated, err := repo.UpdateStatus(context.Background(), "A1", order.StatusPendingConfirm, order.StatusPatch{
		Status:          order.StatusAccepted,
		StatusUpdatedAt: now.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if updated.Status != order.StatusAccepted {
		t.Errorf("Expected status %s, got %s", order.StatusAccepted, updated.Status)
	}
}

func TestOrderRepository_UpdateStatus_Conflict(t *testing.T) {
	repo := NewOrderRepository()
	now := time.Now()
	_, _ = repo.Insert(context.Background(), newTestOrder("A1", order.StatusAccepted, now))

	current, err := repo.UpdateStatus(context.Background(), "A1", order.StatusPendingConfirm, order.StatusPatch{
		Status:          order.StatusRejected,
		StatusUpdatedAt: now,
	})
	if !errors.Is(err, order.ErrStatusConflict) {
		t.Fatalf("Expected ErrStatusConflict, got: %v", err)
	}
	if current == nil || current.Status != order.StatusAccepted {
		t.Errorf("Expected current order with status %s returned alongside conflict", order.StatusAccepted)
	}
}

func TestOrderRepository_Query_NewestFirstAndFilter(t *testing.T) {
	repo := NewOrderRepository()
	now := time.Now()

	first := newTestOrder("A1", order.StatusCreated, now.Add(-2*time.Minute))
	second := newTestOrder("A2", order.StatusCreated, now.Add(-time.Minute))
	other := newTestOrder("B1", order.StatusCreated, now)
	other.MerchantID = "m2"

	for _, o := range []order.Order{first, second, other} {
		_, _ = repo.Insert(context.Background(), o)
	}

	orders, err := repo.Query(context.Background(), &order.QueryOrdersModel{MerchantID: "m1"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders for m1, got %d", len(orders))
	}
	if orders[0].ID != "A2" || orders[1].ID != "A1" {
		t.Errorf("Expected newest-first ordering [A2 A1], got [%s %s]", orders[0].ID, orders[1].ID)
	}

	all, err := repo.Query(context.Background(), &order.QueryOrdersModel{MerchantID: "all"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 orders for 'all', got %d", len(all))
	}
}
