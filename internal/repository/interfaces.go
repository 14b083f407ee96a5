package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/blayzex/storefront-api/internal/domain"
)

// CartRepository defines persisted cart access. Implementations must fail
// soft on malformed stored payloads: Get returns an empty cart, never an
// unmarshalling error.
type CartRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// OrderRepository defines confirmed order data access methods
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	List(ctx context.Context, limit, offset int) ([]*domain.Order, error)
}

// OrderEventRepository defines order audit event data access methods
type OrderEventRepository interface {
	Create(ctx context.Context, event *domain.OrderEvent) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	Cart       CartRepository
	Order      OrderRepository
	OrderEvent OrderEventRepository
}
