package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/command"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
)

type lifecycle interface {
	ConfirmIdentity(ctx context.Context, orderID string, phone string) (*order.Order, error)
}

type chat interface {
	PostMessage(ctx context.Context, msg message.Message) (message.Message, error)
}

// webhookRequest mirrors the Evolution API event envelope. Only the fields the
// confirmation flow reads are declared.
type webhookRequest struct {
	Event string `json:"event"`
	Data  struct {
		Key struct {
			RemoteJid string `json:"remoteJid"`
		} `json:"key"`
		Message struct {
			Conversation        string `json:"conversation"`
			ExtendedTextMessage struct {
				Text string `json:"text"`
			} `json:"extendedTextMessage"`
		} `json:"message"`
	} `json:"data"`
}

func (r *webhookRequest) text() string {
	if r.Data.Message.Conversation != "" {
		return r.Data.Message.Conversation
	}

	return r.Data.Message.ExtendedTextMessage.Text
}

// HandleWebhook ingests inbound WhatsApp events from the Evolution API.
// The provider retries on non-2xx responses, so every outcome short of a
// malformed body is acknowledged with 200.
func HandleWebhook(w http.ResponseWriter, r *http.Request, lifecycle lifecycle, chat chat) {
	req := webhookRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding webhook body", "error", err)

		return
	}

	processEvent(r.Context(), &req, lifecycle, chat)

	w.WriteHeader(http.StatusOK)
}

func processEvent(ctx context.Context, req *webhookRequest, lifecycle lifecycle, chat chat) {
	if req.Event != "MESSAGES_UPSERT" && req.Event != "messages.upsert" {
		return
	}

	cmd := command.Parse(req.text())
	if cmd.Kind != command.KindConfirm {
		return
	}

	confirmed, err := lifecycle.ConfirmIdentity(ctx, cmd.OrderID, req.Data.Key.RemoteJid)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			slog.Info("Webhook confirmation for unknown order", "order_id", cmd.OrderID)

			return
		}

		slog.Error("Error confirming order from webhook", "error", err, "order_id", cmd.OrderID)

		return
	}

	_, err = chat.PostMessage(ctx, message.Message{
		Text:   fmt.Sprintf("✅ Order #%s confirmed via real WhatsApp!", confirmed.ID),
		Sender: message.SenderBot,
	})
	if err != nil {
		slog.Error("Error logging webhook confirmation", "error", err, "order_id", confirmed.ID)
	}
}
