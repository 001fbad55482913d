package order

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusCreated, StatusPendingConfirm, true},
		{StatusPendingConfirm, StatusAccepted, true},
		{StatusPendingConfirm, StatusRejected, true},
		{StatusAccepted, StatusOutForDelivery, true},
		{StatusOutForDelivery, StatusDelivered, true},

		{StatusCreated, StatusAccepted, false},
		{StatusCreated, StatusDelivered, false},
		{StatusAccepted, StatusRejected, false},
		{StatusAccepted, StatusDelivered, false},
		{StatusOutForDelivery, StatusAccepted, false},
		{StatusDelivered, StatusOutForDelivery, false},
		{StatusRejected, StatusPendingConfirm, false},
		{StatusDelivered, StatusDelivered, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []Status{StatusDelivered, StatusRejected} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}

	for _, s := range []Status{StatusCreated, StatusPendingConfirm, StatusAccepted, StatusOutForDelivery} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("SHIPPED"); err == nil {
		t.Error("expected error for unknown status")
	}

	parsed, err := ParseStatus("PENDING_MERCHANT_CONFIRMATION")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != StatusPendingConfirm {
		t.Errorf("expected %s, got %s", StatusPendingConfirm, parsed)
	}
}
