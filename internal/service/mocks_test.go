package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/blayzex/storefront-api/internal/domain"
	"github.com/blayzex/storefront-api/internal/razorpay"
	"github.com/blayzex/storefront-api/pkg/errors"
)

// MockGateway implements GatewayClient for testing
type MockGateway struct {
	Order       *razorpay.Order
	Err         error
	Unconfigured bool

	CreateCalls int
	LastAmount  int64
	LastReceipt string
}

func (m *MockGateway) Configured() bool {
	return !m.Unconfigured
}

func (m *MockGateway) CreateOrder(_ context.Context, amount int64, _, receipt string) (*razorpay.Order, error) {
	m.CreateCalls++
	m.LastAmount = amount
	m.LastReceipt = receipt
	return m.Order, m.Err
}

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	Orders    []*domain.Order
	CreateErr error
}

func (m *MockOrderRepository) Create(_ context.Context, order *domain.Order) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.Orders = append(m.Orders, order)
	return nil
}

func (m *MockOrderRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	for _, order := range m.Orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func (m *MockOrderRepository) GetByPaymentID(_ context.Context, paymentID string) (*domain.Order, error) {
	for _, order := range m.Orders {
		if order.PaymentID == paymentID {
			return order, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: paymentID}
}

func (m *MockOrderRepository) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	for _, order := range m.Orders {
		if order.ID == id {
			order.Status = status
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func (m *MockOrderRepository) List(_ context.Context, limit, offset int) ([]*domain.Order, error) {
	return m.Orders, nil
}

// MockOrderEventRepository implements repository.OrderEventRepository for testing
type MockOrderEventRepository struct {
	Events []*domain.OrderEvent
}

func (m *MockOrderEventRepository) Create(_ context.Context, event *domain.OrderEvent) error {
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOrderEventRepository) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	var events []*domain.OrderEvent
	for _, event := range m.Events {
		if event.OrderID == orderID {
			events = append(events, event)
		}
	}
	return events, nil
}
