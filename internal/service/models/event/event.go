package event

import (
	"time"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/order"
)

// OrderEvent is published on every committed lifecycle transition.
type OrderEvent struct {
	OrderID    string       `json:"orderId"`
	MerchantID string       `json:"merchantId"`
	Status     order.Status `json:"status"`
	OccurredAt time.Time    `json:"occurredAt"`
}
