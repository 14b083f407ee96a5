package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/domain"
	"github.com/blayzex/storefront-api/internal/metrics"
	"github.com/blayzex/storefront-api/internal/razorpay"
	"github.com/blayzex/storefront-api/internal/repository"
	"github.com/blayzex/storefront-api/pkg/errors"
)

// Currency is fixed; the storefront sells in rupees only.
const Currency = "INR"

// GatewayClient is the slice of the Razorpay client the checkout flow needs
type GatewayClient interface {
	Configured() bool
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*razorpay.Order, error)
}

// CheckoutService pre-creates gateway orders and turns verified payment
// callbacks into confirmed orders.
type CheckoutService struct {
	gateway GatewayClient
	repos   *repository.Repositories
	secret  string // gateway key secret, used to recompute payment signatures
	metrics *metrics.CheckoutMetrics
	logger  *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	gateway GatewayClient,
	repos *repository.Repositories,
	secret string,
	m *metrics.CheckoutMetrics,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		gateway: gateway,
		repos:   repos,
		secret:  secret,
		metrics: m,
		logger:  logger,
	}
}

// CreateGatewayOrder registers a payment of the given amount (major units)
// with the gateway and returns the gateway order id
func (s *CheckoutService) CreateGatewayOrder(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", &errors.ErrValidation{Message: "amount is required"}
	}
	if !s.gateway.Configured() {
		return "", &errors.ErrConfiguration{Message: "razorpay credentials are missing"}
	}

	paise := domain.ToPaise(decimal.NewFromFloat(amount))

	order, err := s.gateway.CreateOrder(ctx, paise, Currency, newReceipt())
	if err != nil {
		return "", err
	}

	s.metrics.IncGatewayOrders()
	s.logger.Info("Created gateway order",
		zap.String("gateway_order_id", order.ID),
		zap.Int64("amount_paise", paise),
	)

	return order.ID, nil
}

// ConfirmPayment verifies a payment callback and persists the confirmed
// order. A signature mismatch rejects the request outright with nothing
// written; this is the sole integrity gate against forged "paid" orders.
func (s *CheckoutService) ConfirmPayment(
	ctx context.Context,
	conf PaymentConfirmation,
	customer domain.CustomerDetails,
	items []domain.CartItem,
	total float64,
) (uuid.UUID, error) {
	if s.secret == "" {
		return uuid.Nil, &errors.ErrConfiguration{Message: "razorpay key secret is missing"}
	}

	if !razorpay.VerifyPaymentSignature(conf.GatewayOrderID, conf.PaymentID, conf.Signature, s.secret) {
		s.metrics.IncPaymentsRejected()
		s.logger.Warn("Rejected payment with invalid signature",
			zap.String("gateway_order_id", conf.GatewayOrderID),
			zap.String("payment_id", conf.PaymentID),
		)
		return uuid.Nil, &errors.ErrInvalidSignature{}
	}

	// Re-delivered callback for an already recorded payment: return the
	// existing order instead of writing a duplicate.
	if existing, err := s.repos.Order.GetByPaymentID(ctx, conf.PaymentID); err == nil {
		return existing.ID, nil
	}

	// The endpoint persists the client-supplied total as given, but a
	// server-side recompute from item prices catches tampered carts in the
	// logs. The gateway signature covers identifiers only, not the amount.
	recomputed := domain.CartTotal(items)
	if !recomputed.Equal(decimal.NewFromFloat(total)) {
		s.logger.Warn("Cart total mismatch on verified payment",
			zap.String("payment_id", conf.PaymentID),
			zap.Float64("supplied_total", total),
			zap.String("recomputed_total", recomputed.String()),
		)
	}

	order := &domain.Order{
		Customer:       customer,
		Items:          items,
		Total:          total,
		PaymentID:      conf.PaymentID,
		GatewayOrderID: conf.GatewayOrderID,
		Status:         domain.OrderStatusPaid,
	}

	if err := s.repos.Order.Create(ctx, order); err != nil {
		// The gateway has already captured this payment. Losing the write
		// leaves an orphaned payment that needs manual reconciliation.
		s.metrics.IncOrphanedPayments()
		s.logger.Error("ORPHANED PAYMENT: captured payment has no order record",
			zap.String("payment_id", conf.PaymentID),
			zap.String("gateway_order_id", conf.GatewayOrderID),
			zap.Float64("total", total),
			zap.Error(err),
		)
		return uuid.Nil, err
	}

	s.metrics.IncPaymentsVerified()

	event := &domain.OrderEvent{
		OrderID:   order.ID,
		EventType: "order_created",
		EventData: map[string]interface{}{
			"payment_id":       conf.PaymentID,
			"gateway_order_id": conf.GatewayOrderID,
			"status":           order.Status,
		},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event", zap.Error(err))
	}

	return order.ID, nil
}

// AdvanceStatus moves an order forward along PAID -> SHIPPED -> DELIVERED
func (s *CheckoutService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, newStatus domain.OrderStatus) error {
	if !newStatus.IsValid() {
		return &errors.ErrValidation{Message: "invalid status"}
	}

	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !order.Status.CanTransitionTo(newStatus) {
		return &errors.ErrInvalidStateTransition{
			From: order.Status,
			To:   newStatus,
		}
	}

	if err := s.repos.Order.UpdateStatus(ctx, orderID, newStatus); err != nil {
		return err
	}

	event := &domain.OrderEvent{
		OrderID:   orderID,
		EventType: "status_change",
		EventData: map[string]interface{}{
			"from": order.Status,
			"to":   newStatus,
		},
	}
	if err := s.repos.OrderEvent.Create(ctx, event); err != nil {
		s.logger.Warn("Failed to record order event", zap.Error(err))
	}

	return nil
}

// ListOrders returns confirmed orders, newest first
func (s *CheckoutService) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	return s.repos.Order.List(ctx, limit, offset)
}

// GetOrder returns a single confirmed order
func (s *CheckoutService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.repos.Order.GetByID(ctx, orderID)
}

func newReceipt() string {
	b := make([]byte, 6)
	_, _ = rand.Read(b)
	return "receipt_" + hex.EncodeToString(b)
}
