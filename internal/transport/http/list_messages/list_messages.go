package listmessages

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
)

type service interface {
	GetMessages(ctx context.Context) ([]message.Message, error)
}

// ListMessages handles the chat log listing request.
func ListMessages(w http.ResponseWriter, r *http.Request, service service) {
	messages, err := service.GetMessages(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error getting messages", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(messages); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
