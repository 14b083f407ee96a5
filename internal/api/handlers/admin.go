package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/domain"
	"github.com/blayzex/storefront-api/internal/service"
	"github.com/blayzex/storefront-api/pkg/errors"
)

// AdvanceStatusRequest represents a fulfillment status change request
type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderResponse represents a confirmed order in admin responses
type OrderResponse struct {
	ID             string                 `json:"id"`
	Customer       domain.CustomerDetails `json:"customer"`
	Items          []domain.CartItem      `json:"items"`
	Total          float64                `json:"total"`
	PaymentID      string                 `json:"payment_id"`
	GatewayOrderID string                 `json:"gateway_order_id"`
	Status         domain.OrderStatus     `json:"status"`
	CreatedAt      string                 `json:"created_at"`
	UpdatedAt      string                 `json:"updated_at"`
}

func orderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:             order.ID.String(),
		Customer:       order.Customer,
		Items:          order.Items,
		Total:          order.Total,
		PaymentID:      order.PaymentID,
		GatewayOrderID: order.GatewayOrderID,
		Status:         order.Status,
		CreatedAt:      order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:      order.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// HandleListOrders handles GET /v1/admin/orders
func HandleListOrders(checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		limitStr := c.DefaultQuery("limit", "50")
		offsetStr := c.DefaultQuery("offset", "0")

		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			limit = 50
		}

		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			offset = 0
		}

		orders, err := checkout.ListOrders(c.Request.Context(), limit, offset)
		if err != nil {
			logger.Error("Failed to list orders", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		orderResponses := make([]OrderResponse, len(orders))
		for i, order := range orders {
			orderResponses[i] = orderResponse(order)
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orderResponses,
			"limit":  limit,
			"offset": offset,
		})
	}
}

// HandleGetOrder handles GET /v1/admin/orders/:id
func HandleGetOrder(checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		order, err := checkout.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			logger.Error("Failed to get order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, orderResponse(order))
	}
}

// HandleAdvanceStatus handles POST /v1/admin/orders/:id/status. Only
// forward transitions along PAID -> SHIPPED -> DELIVERED are accepted.
func HandleAdvanceStatus(checkout *service.CheckoutService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
			return
		}

		var req AdvanceStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		newStatus := domain.OrderStatus(req.Status)
		if !newStatus.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}

		if err := checkout.AdvanceStatus(c.Request.Context(), orderID, newStatus); err != nil {
			switch err.(type) {
			case *errors.ErrInvalidStateTransition:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			default:
				logger.Error("Failed to advance order status", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
			}
			return
		}

		order, err := checkout.GetOrder(c.Request.Context(), orderID)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"id": orderID.String(), "status": newStatus})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     order.ID.String(),
			"status": order.Status,
		})
	}
}
