package updateorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
	"github.com/TaoufikZa/watami-mvp/pkg/http/middleware/metrics"
)

// service is an interface for the service layer.
type service interface {
	TransitionTo(ctx context.Context, orderID string, target order.Status) (*order.Order, error)
	ConfirmIdentity(ctx context.Context, orderID string, phone string) (*order.Order, error)
}

// updateOrderRequest carries the merchant's requested transition. The order
// is mutated only through the lifecycle engine, so the only writable fields
// are the target status and, for identity confirmation, the phone number.
type updateOrderRequest struct {
	Status    string `json:"status"`
	UserPhone string `json:"userPhone,omitempty"`
}

// UpdateOrder handles PATCH requests against a single order.
func UpdateOrder(w http.ResponseWriter, r *http.Request, service service) {
	orderID := chi.URLParam(r, "id")

	req := updateOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update order", "error", err)

		return
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing target status", "status", req.Status, "error", err)

		return
	}

	var updated *order.Order
	if target == order.StatusPendingConfirm {
		updated, err = service.ConfirmIdentity(r.Context(), orderID, req.UserPhone)
	} else {
		updated, err = service.TransitionTo(r.Context(), orderID, target)
	}
	if err != nil {
		var invalid *order.InvalidTransitionError
		switch {
		case errors.Is(err, order.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.As(err, &invalid):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		slog.Error("Error updating order", "order_id", orderID, "status", target, "error", err)
		metrics.RecordOrderOperation("transition", false)

		return
	}

	metrics.RecordOrderOperation("transition", true)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		slog.Error("Error sending response for update order", "error", err)
	}
}
