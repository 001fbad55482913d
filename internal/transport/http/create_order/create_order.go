package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
	"github.com/TaoufikZa/watami-mvp/pkg/http/middleware/metrics"
)

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, model order.NewOrderModel) (order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name"      validate:"required"`
	Price     int64  `json:"price"     validate:"gte=0"`
	Qty       int    `json:"qty"       validate:"gt=0"`
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	MerchantID  string                     `json:"merchantId"  validate:"required"`
	Items       []itemInCreateOrderRequest `json:"items"       validate:"required,min=1,dive"`
	Total       int64                      `json:"total"       validate:"gte=0"`
	UserAddress string                     `json:"userAddress" validate:"required"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createOrderRequest to order.NewOrderModel.
func (r *createOrderRequest) toModel() order.NewOrderModel {
	items := make([]order.Item, len(r.Items))
	for i, item := range r.Items {
		items[i] = order.Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Qty:       item.Qty,
		}
	}

	return order.NewOrderModel{
		MerchantID:  r.MerchantID,
		Items:       items,
		Total:       r.Total,
		UserAddress: r.UserAddress,
	}
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	created, err := service.CreateOrder(r.Context(), req.toModel())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, order.ErrEmptyItems) ||
			errors.Is(err, order.ErrInvalidQty) ||
			errors.Is(err, order.ErrTotalMismatch) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		slog.Error("Error creating order", "error", err)
		metrics.RecordOrderOperation("create", false)

		return
	}

	metrics.RecordOrderOperation("create", true)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for create order", "error", err)
	}
}
