package imessagerepo

import (
	"context"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
)

// IMessageRepository is the append-only chat log behind the simulated
// WhatsApp channel.
type IMessageRepository interface {
	// Insert appends a message to the log.
	Insert(ctx context.Context, msg message.Message) (message.Message, error)

	// List returns all messages in chronological order.
	List(ctx context.Context) ([]message.Message, error)
}
