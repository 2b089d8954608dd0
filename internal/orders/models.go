package orders

import (
	"encoding/json"
	"time"
)

// StatusPending is the only status this package ever writes.
// Later workflow stages own the other values.
const StatusPending = "pending"

type Order struct {
	ID              int64           `json:"id"`
	UserID          *int64          `json:"user_id,omitempty"`
	TotalCents      int64           `json:"total_cents"`
	ShippingAddress json.RawMessage `json:"shipping_address"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ID         int64 `json:"id"`
	OrderID    int64 `json:"order_id"`
	ProductID  int64 `json:"product_id"`
	Qty        int   `json:"qty"`
	PriceCents int64 `json:"price_cents"`
}

// ItemInput is one line of an incoming submission. PriceCents is the
// snapshot taken at order time; it is stored as-is and never refreshed
// from the live product row.
type ItemInput struct {
	ProductID  int64 `json:"product_id"`
	Qty        int   `json:"qty"`
	PriceCents int64 `json:"price_cents"`
}

// Submission is the validated place-order payload handed to the engine.
type Submission struct {
	UserID          *int64          `json:"user_id,omitempty"`
	TotalCents      int64           `json:"total_cents"`
	ShippingAddress json.RawMessage `json:"shipping_address"`
	Status          string          `json:"status,omitempty"`
	Items           []ItemInput     `json:"items"`
}
