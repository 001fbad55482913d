package order

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"
)

// Item is a line in an order. Items are fixed at creation, there is no
// post-hoc editing of an order's contents.
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Qty       int    `json:"qty"`
}

// Order represents a customer order owned by a single merchant.
type Order struct {
	ID          string `json:"id"`
	MerchantID  string `json:"merchantId"`
	Items       []Item `json:"items"`
	Total       int64  `json:"total"`
	UserAddress string `json:"userAddress"`
	UserPhone   string `json:"userPhone,omitempty"`
	Status      Status `json:"status"`

	CreatedAt       time.Time `json:"createdAt"`
	StatusUpdatedAt time.Time `json:"statusUpdatedAt"`

	// ExpiresAt bounds the identity-confirmation window after checkout.
	// MerchantSLADeadline and AssemblyDeadline are set when the order enters
	// the state they belong to and are advisory only: nothing expires an
	// order automatically once it has moved on.
	ExpiresAt           *time.Time `json:"expiresAt,omitempty"`
	MerchantSLADeadline *time.Time `json:"merchantSlaDeadline,omitempty"`
	AssemblyDeadline    *time.Time `json:"assemblyDeadline,omitempty"`
}

var (
	ErrNotFound      = errors.New("order not found")
	ErrEmptyItems    = errors.New("order must contain at least one item")
	ErrInvalidQty    = errors.New("item quantity must be positive")
	ErrTotalMismatch = errors.New("order total does not match sum of item prices")

	// ErrStatusConflict is returned by a store when a conditional status
	// update finds the order in a different state than expected.
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// Validate checks the creation invariants: non-empty items, positive
// quantities and a total equal to sum(price*qty).
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return ErrEmptyItems
	}

	var sum int64
	for _, item := range o.Items {
		if item.Qty <= 0 {
			return ErrInvalidQty
		}
		sum += item.Price * int64(item.Qty)
	}
	if sum != o.Total {
		return ErrTotalMismatch
	}

	return nil
}

// StatusPatch describes the mutation applied together with a status change.
// Nil pointer fields are left untouched by the store.
type StatusPatch struct {
	Status              Status
	StatusUpdatedAt     time.Time
	UserPhone           *string
	MerchantSLADeadline *time.Time
	AssemblyDeadline    *time.Time
}

// NewOrderModel carries the checkout payload into the lifecycle engine.
// Items and totals come in by value; the cart itself lives in the client.
type NewOrderModel struct {
	MerchantID  string `json:"merchantId"`
	Items       []Item `json:"items"`
	Total       int64  `json:"total"`
	UserAddress string `json:"userAddress"`
}

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	MerchantID string `json:"merchantId,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewID generates a short opaque order identifier, nine uppercase base36
// characters.
func NewID() string {
	buf := make([]byte, 9)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(idAlphabet))))
		if err != nil {
			panic(err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}

	return string(buf)
}
