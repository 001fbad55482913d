package order

import (
	"errors"
	"fmt"
)

// Status is the lifecycle state of an order. Orders only ever move forward:
//
//	CREATED -> PENDING_MERCHANT_CONFIRMATION -> ACCEPTED -> OUT_FOR_DELIVERY -> DELIVERED
//
// with REJECTED reachable only from PENDING_MERCHANT_CONFIRMATION. DELIVERED
// and REJECTED are terminal.
type Status string

const (
	StatusCreated        Status = "CREATED"
	StatusPendingConfirm Status = "PENDING_MERCHANT_CONFIRMATION"
	StatusAccepted       Status = "ACCEPTED"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusRejected       Status = "REJECTED"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCreated, StatusPendingConfirm, StatusAccepted,
		StatusOutForDelivery, StatusDelivered, StatusRejected:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

var transitions = map[Status][]Status{
	StatusCreated:        {StatusPendingConfirm},
	StatusPendingConfirm: {StatusAccepted, StatusRejected},
	StatusAccepted:       {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
}

// CanTransitionTo reports whether the transition graph allows moving from s
// to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// InvalidTransitionError reports a rejected state change, carrying the
// order's actual current state and the state that was requested.
type InvalidTransitionError struct {
	Current   Status
	Requested Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.Current, e.Requested)
}
