package inotifier

import (
	"context"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/message"
)

// INotifier sends a message to a party over whichever channel is wired in:
// the simulated in-app bot or the real outbound WhatsApp API. Realizations
// make an at-least-once attempt and give no delivery confirmation; callers
// must treat failures as non-fatal.
type INotifier interface {
	Notify(ctx context.Context, recipient string, text string, cta *message.CTA) error
}
