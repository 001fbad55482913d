package listmerchants

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/merchant"
)

type service interface {
	GetMerchants(ctx context.Context) ([]merchant.Merchant, error)
	GetNearbyMerchants(ctx context.Context, lat, lng float64) ([]merchant.Merchant, error)
}

// ListMerchants handles the merchant listing request.
func ListMerchants(w http.ResponseWriter, r *http.Request, service service) {
	merchants, err := service.GetMerchants(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting merchants", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(merchants); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

type nearbyRequest struct {
	Lat float64 `schema:"lat"`
	Lng float64 `schema:"lng"`
}

// ListNearby handles the nearby-merchants request.
func ListNearby(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &nearbyRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	merchants, err := service.GetNearbyMerchants(r.Context(), query.Lat, query.Lng)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting nearby merchants", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(merchants); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
