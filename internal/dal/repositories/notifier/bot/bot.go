package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/TaoufikZa/watami-mvp/internal/dal/interfaces/imessagerepo"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
)

// BotNotifier is the simulated WhatsApp channel: notifications are appended
// to the shared chat log as bot messages and picked up by polling clients.
type BotNotifier struct {
	messageRepo imessagerepo.IMessageRepository
}

// NewBotNotifier creates a new simulated-channel notifier.
func NewBotNotifier(messageRepo imessagerepo.IMessageRepository) *BotNotifier {
	return &BotNotifier{
		messageRepo: messageRepo,
	}
}

// Notify appends a bot message to the chat log. The recipient is ignored:
// the simulator has a single shared conversation.
func (n *BotNotifier) Notify(ctx context.Context, recipient string, text string, cta *message.CTA) error {
	_, err := n.messageRepo.Insert(ctx, message.Message{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    message.SenderBot,
		Timestamp: time.Now(),
		CTA:       cta,
	})
	if err != nil {
		return fmt.Errorf("failed to append bot message: %w", err)
	}

	return nil
}
