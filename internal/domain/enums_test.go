package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, OrderStatusPaid.IsValid())
	assert.True(t, OrderStatusShipped.IsValid())
	assert.True(t, OrderStatusDelivered.IsValid())
	assert.False(t, OrderStatus("PENDING").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPaid, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},

		// skipped
		{OrderStatusPaid, OrderStatusDelivered, false},

		// backward
		{OrderStatusShipped, OrderStatusPaid, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusDelivered, OrderStatusPaid, false},

		// self
		{OrderStatusPaid, OrderStatusPaid, false},

		// terminal
		{OrderStatusDelivered, OrderStatusDelivered, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
