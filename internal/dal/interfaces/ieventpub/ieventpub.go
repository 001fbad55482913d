package ieventpub

import (
	"context"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/event"
)

// IEventPublisher emits order lifecycle events for downstream consumers.
type IEventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev event.OrderEvent) error
}
