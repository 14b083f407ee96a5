package domain

// OrderStatus represents the fulfillment status of a confirmed order
type OrderStatus string

const (
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid.
// Fulfillment moves strictly forward: PAID -> SHIPPED -> DELIVERED.
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPaid:
		return newStatus == OrderStatusShipped
	case OrderStatusShipped:
		return newStatus == OrderStatusDelivered
	case OrderStatusDelivered:
		return false // Terminal state
	default:
		return false
	}
}
