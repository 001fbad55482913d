package postmessage

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
)

type service interface {
	PostMessage(ctx context.Context, msg message.Message) (message.Message, error)
}

// postMessageRequest represents a post message request.
type postMessageRequest struct {
	Text   string       `json:"text"   validate:"required"`
	Sender string       `json:"sender" validate:"required,oneof=customer bot merchant"`
	CTA    *message.CTA `json:"cta,omitempty"`
}

// Validate validates the post message request.
func (r *postMessageRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *postMessageRequest) toModel() message.Message {
	return message.Message{
		Text:   r.Text,
		Sender: message.Sender(r.Sender),
		CTA:    r.CTA,
	}
}

// PostMessage handles appending a message to the chat log.
func PostMessage(w http.ResponseWriter, r *http.Request, service service) {
	req := postMessageRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for post message", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for post message", "error", err)

		return
	}

	created, err := service.PostMessage(r.Context(), req.toModel())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error posting message", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for post message", "error", err)
	}
}
