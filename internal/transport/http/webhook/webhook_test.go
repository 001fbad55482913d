package webhook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
)

type fakeLifecycle struct {
	order *order.Order
	err   error

	confirmedID    string
	confirmedPhone string
}

func (f *fakeLifecycle) ConfirmIdentity(_ context.Context, orderID string, phone string) (*order.Order, error) {
	f.confirmedID = orderID
	f.confirmedPhone = phone
	if f.err != nil {
		return nil, f.err
	}

	return f.order, nil
}

type fakeChat struct {
	posted []message.Message
}

func (f *fakeChat) PostMessage(_ context.Context, msg message.Message) (message.Message, error) {
	f.posted = append(f.posted, msg)

	return msg, nil
}

func post(t *testing.T, lifecycle *fakeLifecycle, chat *fakeChat, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/whatsapp/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleWebhook(rec, req, lifecycle, chat)

	return rec
}

func TestHandleWebhookConfirms(t *testing.T) {
	lifecycle := &fakeLifecycle{order: &order.Order{ID: "A1B2C3D4E", Status: order.StatusPendingConfirm}}
	chat := &fakeChat{}

	body := `{"event":"messages.upsert","data":{"key":{"remoteJid":"212612345678@s.whatsapp.net"},"message":{"conversation":"CONFIRM_ORDER_A1B2C3D4E"}}}`
	rec := post(t, lifecycle, chat, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if lifecycle.confirmedID != "A1B2C3D4E" {
		t.Errorf("expected order A1B2C3D4E to be confirmed, got %q", lifecycle.confirmedID)
	}
	if lifecycle.confirmedPhone != "212612345678@s.whatsapp.net" {
		t.Errorf("expected sender jid to be recorded, got %q", lifecycle.confirmedPhone)
	}

	if len(chat.posted) != 1 {
		t.Fatalf("expected one chat log entry, got %d", len(chat.posted))
	}
	if chat.posted[0].Sender != message.SenderBot {
		t.Errorf("expected bot entry, got %s", chat.posted[0].Sender)
	}
	if !strings.Contains(chat.posted[0].Text, "A1B2C3D4E") {
		t.Errorf("expected confirmation text to name the order, got %q", chat.posted[0].Text)
	}
}

func TestHandleWebhookExtendedText(t *testing.T) {
	lifecycle := &fakeLifecycle{order: &order.Order{ID: "A1B2C3D4E"}}
	chat := &fakeChat{}

	body := `{"event":"MESSAGES_UPSERT","data":{"key":{"remoteJid":"212612345678@s.whatsapp.net"},"message":{"extendedTextMessage":{"text":"confirm_order_A1B2C3D4E please"}}}}`
	post(t, lifecycle, chat, body)

	if lifecycle.confirmedID != "A1B2C3D4E" {
		t.Errorf("expected extended text to be parsed, got %q", lifecycle.confirmedID)
	}
}

func TestHandleWebhookIgnores(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "unrelated event",
			body: `{"event":"CONNECTION_UPDATE","data":{}}`,
		},
		{
			name: "plain chatter",
			body: `{"event":"messages.upsert","data":{"key":{"remoteJid":"x@s.whatsapp.net"},"message":{"conversation":"hello there"}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lifecycle := &fakeLifecycle{}
			chat := &fakeChat{}

			rec := post(t, lifecycle, chat, tt.body)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
			}
			if lifecycle.confirmedID != "" {
				t.Error("lifecycle should not be touched")
			}
			if len(chat.posted) != 0 {
				t.Error("nothing should be logged")
			}
		})
	}
}

func TestHandleWebhookUnknownOrder(t *testing.T) {
	lifecycle := &fakeLifecycle{err: order.ErrNotFound}
	chat := &fakeChat{}

	body := `{"event":"messages.upsert","data":{"key":{"remoteJid":"x@s.whatsapp.net"},"message":{"conversation":"CONFIRM_ORDER_MISSING123"}}}`
	rec := post(t, lifecycle, chat, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("unknown orders must still be acknowledged, got %d", rec.Code)
	}
	if len(chat.posted) != 0 {
		t.Error("no confirmation should be logged for unknown orders")
	}
}
