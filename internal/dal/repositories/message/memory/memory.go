package memoryrepo

import (
	"context"
	"sync"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
)

// MessageRepository is an in-memory append-only chat log.
type MessageRepository struct {
	mu       sync.RWMutex
	messages []message.Message
}

// NewMessageRepository creates a new in-memory message repository.
func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

// Insert appends a message to the log.
func (r *MessageRepository) Insert(ctx context.Context, msg message.Message) (message.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, msg)

	return msg, nil
}

// List returns all messages in chronological order.
func (r *MessageRepository) List(ctx context.Context) ([]message.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]message.Message, len(r.messages))
	copy(out, r.messages)

	return out, nil
}
