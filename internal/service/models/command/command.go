package command

import "strings"

// Kind tags a parsed inbound chat command.
type Kind string

const (
	KindConfirm  Kind = "confirm"
	KindGreeting Kind = "greeting"
	KindUnknown  Kind = "unknown"
)

const confirmToken = "CONFIRM_ORDER_"

// Command is the result of parsing free-form inbound text. OrderID is set
// only for KindConfirm.
type Command struct {
	Kind    Kind
	OrderID string
}

// Parse recognizes commands embedded in a chat message. The confirmation
// token is matched case-insensitively; when the text carries several tokens
// only the first one is honored. The order id is the token remainder up to
// the next whitespace.
func Parse(text string) Command {
	upper := strings.ToUpper(text)

	if idx := strings.Index(upper, confirmToken); idx >= 0 {
		rest := strings.TrimSpace(text[idx+len(confirmToken):])
		if fields := strings.Fields(rest); len(fields) > 0 {
			return Command{Kind: KindConfirm, OrderID: fields[0]}
		}

		return Command{Kind: KindUnknown}
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "watami") || strings.Contains(lower, "watame") {
		return Command{Kind: KindGreeting}
	}

	return Command{Kind: KindUnknown}
}
