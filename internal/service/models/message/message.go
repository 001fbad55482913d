package message

import "time"

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderCustomer Sender = "customer"
	SenderBot      Sender = "bot"
	SenderMerchant Sender = "merchant"
)

// CTA is an optional call-to-action button attached to a bot message.
type CTA struct {
	Label string `json:"label"`
	Link  string `json:"link"`
}

// Message is an entry in the append-only chat log that backs the simulated
// WhatsApp channel. Clients read it by polling.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	CTA       *CTA      `json:"cta,omitempty"`
}
