package command

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Command
	}{
		{
			name: "plain token",
			text: "CONFIRM_ORDER_ABC123",
			want: Command{Kind: KindConfirm, OrderID: "ABC123"},
		},
		{
			name: "trailing junk stops at whitespace",
			text: "CONFIRM_ORDER_abc123 trailing junk",
			want: Command{Kind: KindConfirm, OrderID: "abc123"},
		},
		{
			name: "token embedded in sentence",
			text: "please process CONFIRM_ORDER_XYZ789 thanks",
			want: Command{Kind: KindConfirm, OrderID: "XYZ789"},
		},
		{
			name: "case insensitive token",
			text: "confirm_order_A1B2C3",
			want: Command{Kind: KindConfirm, OrderID: "A1B2C3"},
		},
		{
			name: "first token wins",
			text: "CONFIRM_ORDER_FIRST and CONFIRM_ORDER_SECOND",
			want: Command{Kind: KindConfirm, OrderID: "FIRST"},
		},
		{
			name: "token with no id",
			text: "CONFIRM_ORDER_   ",
			want: Command{Kind: KindUnknown},
		},
		{
			name: "greeting",
			text: "Hey Watami!",
			want: Command{Kind: KindGreeting},
		},
		{
			name: "greeting misspelling",
			text: "watame",
			want: Command{Kind: KindGreeting},
		},
		{
			name: "unrelated text",
			text: "what's on the menu?",
			want: Command{Kind: KindUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}
