package chatsvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/TaoufikZa/watami-mvp/internal/dal/interfaces/imessagerepo"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/command"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
)

// simUserPhone is the phone number the simulated channel confirms orders
// with; a real channel supplies the sender's actual number instead.
const simUserPhone = "+212600000000"

// lifecycle is the slice of the order engine the bot needs.
type lifecycle interface {
	ConfirmIdentity(ctx context.Context, orderID string, phone string) (*order.Order, error)
}

// ChatService owns the shared chat log of the simulated WhatsApp channel and
// runs the bot's automated replies.
type ChatService struct {
	messageRepo imessagerepo.IMessageRepository
	lifecycle   lifecycle
}

// option is a function that configures the ChatService.
type option func(*ChatService)

// MustNewChatService creates a new ChatService.
func MustNewChatService(opts ...option) *ChatService {
	s := &ChatService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.messageRepo == nil {
		panic("chatsvc: message repository is required")
	}

	return s
}

// WithMessageRepository sets the chat log store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMessageRepository(repo imessagerepo.IMessageRepository) option {
	return func(s *ChatService) {
		s.messageRepo = repo
	}
}

// WithLifecycle sets the order engine the bot confirms orders against.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLifecycle(l lifecycle) option {
	return func(s *ChatService) {
		s.lifecycle = l
	}
}

// GetMessages returns the chat log in chronological order.
func (s *ChatService) GetMessages(ctx context.Context) ([]message.Message, error) {
	return s.messageRepo.List(ctx)
}

// PostMessage appends a message to the log. Customer messages additionally
// run the bot logic, which may append an automated reply.
func (s *ChatService) PostMessage(ctx context.Context, msg message.Message) (message.Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	stored, err := s.messageRepo.Insert(ctx, msg)
	if err != nil {
		return message.Message{}, err
	}

	if msg.Sender == message.SenderCustomer {
		s.reply(ctx, msg.Text)
	}

	return stored, nil
}

// reply runs the bot's automated replies for an inbound customer text.
func (s *ChatService) reply(ctx context.Context, text string) {
	cmd := command.Parse(text)

	var (
		replyText string
		cta       *message.CTA
	)

	switch cmd.Kind {
	case command.KindGreeting:
		replyText = "Welcome to Watami! 🍕 Looking for something to eat? Check out shops near you:"
		cta = &message.CTA{Label: "Open Nearby Shops", Link: "/nearby"}

	case command.KindConfirm:
		if s.lifecycle == nil {
			return
		}
		_, err := s.lifecycle.ConfirmIdentity(ctx, cmd.OrderID, simUserPhone)
		switch {
		case err == nil:
			replyText = fmt.Sprintf("✅ Order #%s has been confirmed! 🍕 It's being prepared.", cmd.OrderID)
		case errors.Is(err, order.ErrNotFound):
			replyText = fmt.Sprintf("❌ Error: order %s not found", cmd.OrderID)
		default:
			slog.Error("Failed to confirm order from chat", "order_id", cmd.OrderID, "error", err)
			replyText = fmt.Sprintf("❌ Error: could not confirm order %s", cmd.OrderID)
		}

	default:
		return
	}

	_, err := s.messageRepo.Insert(ctx, message.Message{
		ID:        uuid.New().String(),
		Text:      replyText,
		Sender:    message.SenderBot,
		Timestamp: time.Now(),
		CTA:       cta,
	})
	if err != nil {
		slog.Error("Failed to append bot reply", "error", err)
	}
}
