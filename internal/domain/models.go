package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartItem represents one product+size+quantity entry in a cart.
// Two entries never share the same (ID, Size) pair; quantities merge instead.
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"` // formatted, e.g. "₹2,499"
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

// Cart is the persisted per-session cart. Open tracks the cart panel
// visibility so it survives reloads along with the items.
type Cart struct {
	Items     []CartItem `json:"items"`
	Open      bool       `json:"open"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CustomerDetails holds buyer identity and shipping fields
type CustomerDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// GatewayOrder is a pending-payment record pre-registered with Razorpay.
// Amount is in paise (minor currency units).
type GatewayOrder struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// Order is a confirmed order, created only after signature verification
type Order struct {
	ID             uuid.UUID
	Customer       CustomerDetails
	Items          []CartItem
	Total          float64
	PaymentID      string
	GatewayOrderID string
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderEvent represents an audit event for an order
type OrderEvent struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	EventType string
	EventData map[string]interface{} // JSONB
	CreatedAt time.Time
}
