package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/cart"
	"github.com/blayzex/storefront-api/internal/domain"
	"github.com/blayzex/storefront-api/internal/service"
	"github.com/blayzex/storefront-api/pkg/errors"
)

// CreateOrderRequest represents the gateway order pre-creation payload.
// Amount is in major currency units (rupees).
type CreateOrderRequest struct {
	Amount float64 `json:"amount"`
}

// VerifyPaymentRequest is the payment completion callback relayed by the
// browser after the gateway widget closes
type VerifyPaymentRequest struct {
	service.PaymentConfirmation
	Customer service.CustomerInfo `json:"customer" binding:"required"`
	Items    []AddItemCartLine    `json:"items" binding:"required,min=1"`
	Total    float64              `json:"total" binding:"required"`
}

// AddItemCartLine is a cart line item as submitted at checkout time
type AddItemCartLine struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Price    string `json:"price" binding:"required"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Size     string `json:"size" binding:"required"`
}

// HandleCreateOrder handles POST /api/create-order
func HandleCreateOrder(checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
			return
		}

		orderID, err := checkout.CreateGatewayOrder(c.Request.Context(), req.Amount)
		if err != nil {
			switch e := err.(type) {
			case *errors.ErrValidation:
				c.JSON(http.StatusBadRequest, gin.H{"error": e.Error()})
			case *errors.ErrConfiguration:
				logger.Error("Gateway order creation refused", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "server misconfiguration"})
			case *errors.ErrGateway:
				c.JSON(http.StatusInternalServerError, gin.H{"error": e.Error()})
			default:
				logger.Error("Failed to create gateway order", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "error creating order"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"orderId": orderID})
	}
}

// HandleVerifyPayment handles POST /api/verify-payment. The signature check
// inside the service is the sole gate between a browser callback and a
// durable PAID order.
func HandleVerifyPayment(checkout *service.CheckoutService, carts *cart.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		orderID, err := checkout.ConfirmPayment(
			c.Request.Context(),
			req.PaymentConfirmation,
			req.Customer.ToDomain(),
			toDomainItems(req.Items),
			req.Total,
		)
		if err != nil {
			switch {
			case isInvalidSignature(err):
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment signature"})
			case isConfiguration(err):
				logger.Error("Payment verification refused", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "server misconfiguration"})
			default:
				logger.Error("Payment verification failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		// The persisted cart is spent; a fresh session starts empty.
		if err := carts.Clear(c.Request.Context(), cartSession(c)); err != nil {
			logger.Warn("Failed to clear cart after checkout", zap.Error(err))
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "id": orderID.String()})
	}
}

func toDomainItems(lines []AddItemCartLine) []domain.CartItem {
	items := make([]domain.CartItem, len(lines))
	for i, line := range lines {
		items[i] = domain.CartItem{
			ID:       line.ID,
			Name:     line.Name,
			Price:    line.Price,
			Image:    line.Image,
			Quantity: line.Quantity,
			Size:     line.Size,
		}
	}
	return items
}

func isInvalidSignature(err error) bool {
	_, ok := err.(*errors.ErrInvalidSignature)
	return ok
}

func isConfiguration(err error) bool {
	_, ok := err.(*errors.ErrConfiguration)
	return ok
}
