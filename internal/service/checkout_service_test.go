package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/domain"
	"github.com/blayzex/storefront-api/internal/razorpay"
	"github.com/blayzex/storefront-api/internal/repository"
	"github.com/blayzex/storefront-api/pkg/errors"
)

const testSecret = "test_secret"

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func newTestService(gateway *MockGateway) (*CheckoutService, *MockOrderRepository, *MockOrderEventRepository) {
	orderRepo := &MockOrderRepository{}
	eventRepo := &MockOrderEventRepository{}
	repos := &repository.Repositories{
		Order:      orderRepo,
		OrderEvent: eventRepo,
	}
	svc := NewCheckoutService(gateway, repos, testSecret, nil, zap.NewNop())
	return svc, orderRepo, eventRepo
}

func testCustomer() domain.CustomerDetails {
	return domain.CustomerDetails{
		Name:    "Arjun Mehta",
		Email:   "arjun@example.com",
		Phone:   "9876543210",
		Address: "14 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	}
}

func TestCreateGatewayOrder(t *testing.T) {
	gateway := &MockGateway{Order: &razorpay.Order{ID: "order_abc", Status: "created"}}
	svc, _, _ := newTestService(gateway)

	orderID, err := svc.CreateGatewayOrder(context.Background(), 2499)
	require.NoError(t, err)
	assert.Equal(t, "order_abc", orderID)

	// Amount converted to paise before hitting the gateway
	assert.Equal(t, int64(249900), gateway.LastAmount)
	assert.Contains(t, gateway.LastReceipt, "receipt_")
}

func TestCreateGatewayOrderRejectsMissingAmount(t *testing.T) {
	gateway := &MockGateway{}
	svc, _, _ := newTestService(gateway)

	for _, amount := range []float64{0, -10} {
		_, err := svc.CreateGatewayOrder(context.Background(), amount)
		require.Error(t, err)
		_, ok := err.(*errors.ErrValidation)
		assert.True(t, ok, "amount %v: expected validation error, got %T", amount, err)
	}

	// Rejected before any network call
	assert.Equal(t, 0, gateway.CreateCalls)
}

func TestCreateGatewayOrderUnconfigured(t *testing.T) {
	gateway := &MockGateway{Unconfigured: true}
	svc, _, _ := newTestService(gateway)

	_, err := svc.CreateGatewayOrder(context.Background(), 2499)
	require.Error(t, err)
	_, ok := err.(*errors.ErrConfiguration)
	assert.True(t, ok, "expected configuration error, got %T", err)
	assert.Equal(t, 0, gateway.CreateCalls)
}

func TestConfirmPaymentValidSignature(t *testing.T) {
	svc, orderRepo, eventRepo := newTestService(&MockGateway{})

	items := []domain.CartItem{
		{ID: "4002", Name: "Core Heavy Tank", Price: "₹2,499", Quantity: 1, Size: "M"},
	}

	conf := PaymentConfirmation{
		GatewayOrderID: "order_abc",
		PaymentID:      "pay_123",
		Signature:      sign("order_abc", "pay_123"),
	}

	orderID, err := svc.ConfirmPayment(context.Background(), conf, testCustomer(), items, 2499)
	require.NoError(t, err)

	// Exactly one new PAID record
	require.Len(t, orderRepo.Orders, 1)
	order := orderRepo.Orders[0]
	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)
	assert.Equal(t, "pay_123", order.PaymentID)
	assert.Equal(t, "order_abc", order.GatewayOrderID)
	assert.Equal(t, float64(2499), order.Total)
	assert.Equal(t, items, order.Items)

	require.Len(t, eventRepo.Events, 1)
	assert.Equal(t, "order_created", eventRepo.Events[0].EventType)
}

func TestConfirmPaymentInvalidSignature(t *testing.T) {
	svc, orderRepo, _ := newTestService(&MockGateway{})

	conf := PaymentConfirmation{
		GatewayOrderID: "order_abc",
		PaymentID:      "pay_123",
		Signature:      sign("order_abc", "pay_999"), // signed over different ids
	}

	_, err := svc.ConfirmPayment(context.Background(), conf, testCustomer(), nil, 2499)
	require.Error(t, err)
	_, ok := err.(*errors.ErrInvalidSignature)
	assert.True(t, ok, "expected signature error, got %T", err)

	// Zero new records
	assert.Empty(t, orderRepo.Orders)
}

func TestConfirmPaymentMissingSecret(t *testing.T) {
	orderRepo := &MockOrderRepository{}
	repos := &repository.Repositories{Order: orderRepo, OrderEvent: &MockOrderEventRepository{}}
	svc := NewCheckoutService(&MockGateway{}, repos, "", nil, zap.NewNop())

	conf := PaymentConfirmation{
		GatewayOrderID: "order_abc",
		PaymentID:      "pay_123",
		Signature:      sign("order_abc", "pay_123"),
	}

	_, err := svc.ConfirmPayment(context.Background(), conf, testCustomer(), nil, 2499)
	require.Error(t, err)
	_, ok := err.(*errors.ErrConfiguration)
	assert.True(t, ok, "expected configuration error, got %T", err)
	assert.Empty(t, orderRepo.Orders)
}

func TestConfirmPaymentRedeliveredCallback(t *testing.T) {
	svc, orderRepo, _ := newTestService(&MockGateway{})

	conf := PaymentConfirmation{
		GatewayOrderID: "order_abc",
		PaymentID:      "pay_123",
		Signature:      sign("order_abc", "pay_123"),
	}

	first, err := svc.ConfirmPayment(context.Background(), conf, testCustomer(), nil, 2499)
	require.NoError(t, err)

	second, err := svc.ConfirmPayment(context.Background(), conf, testCustomer(), nil, 2499)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, orderRepo.Orders, 1)
}

func TestConfirmPaymentPersistenceFailure(t *testing.T) {
	orderRepo := &MockOrderRepository{CreateErr: assert.AnError}
	repos := &repository.Repositories{Order: orderRepo, OrderEvent: &MockOrderEventRepository{}}
	svc := NewCheckoutService(&MockGateway{}, repos, testSecret, nil, zap.NewNop())

	conf := PaymentConfirmation{
		GatewayOrderID: "order_abc",
		PaymentID:      "pay_123",
		Signature:      sign("order_abc", "pay_123"),
	}

	_, err := svc.ConfirmPayment(context.Background(), conf, testCustomer(), nil, 2499)
	require.Error(t, err)
	assert.Empty(t, orderRepo.Orders)
}

func TestAdvanceStatus(t *testing.T) {
	svc, orderRepo, eventRepo := newTestService(&MockGateway{})

	conf := PaymentConfirmation{
		GatewayOrderID: "order_abc",
		PaymentID:      "pay_123",
		Signature:      sign("order_abc", "pay_123"),
	}
	orderID, err := svc.ConfirmPayment(context.Background(), conf, testCustomer(), nil, 2499)
	require.NoError(t, err)

	// Forward edge
	require.NoError(t, svc.AdvanceStatus(context.Background(), orderID, domain.OrderStatusShipped))
	assert.Equal(t, domain.OrderStatusShipped, orderRepo.Orders[0].Status)

	// Backward edge rejected
	err = svc.AdvanceStatus(context.Background(), orderID, domain.OrderStatusPaid)
	require.Error(t, err)
	_, ok := err.(*errors.ErrInvalidStateTransition)
	assert.True(t, ok, "expected transition error, got %T", err)
	assert.Equal(t, domain.OrderStatusShipped, orderRepo.Orders[0].Status)

	require.NoError(t, svc.AdvanceStatus(context.Background(), orderID, domain.OrderStatusDelivered))

	// Terminal
	err = svc.AdvanceStatus(context.Background(), orderID, domain.OrderStatusShipped)
	require.Error(t, err)

	// order_created + two status changes
	assert.Len(t, eventRepo.Events, 3)
}
