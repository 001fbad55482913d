package listproducts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/product"
)

type service interface {
	GetProducts(ctx context.Context, merchantID string) ([]product.Product, error)
}

// ListProducts handles the product listing request for a merchant.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	merchantID := chi.URLParam(r, "merchantId")

	products, err := service.GetProducts(r.Context(), merchantID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting products", "merchant_id", merchantID, "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(products); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
