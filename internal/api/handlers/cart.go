package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/cart"
	"github.com/blayzex/storefront-api/internal/domain"
	"github.com/blayzex/storefront-api/pkg/errors"
)

const (
	cartSessionCookie = "cart_session"
	cartSessionMaxAge = 30 * 24 * 60 * 60 // seconds, matches the store TTL
)

// cartSession returns the cart session id, minting one on first contact
func cartSession(c *gin.Context) string {
	if id, err := c.Cookie(cartSessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(cartSessionCookie, id, cartSessionMaxAge, "/", "", false, true)
	return id
}

// AddItemRequest represents an add-to-cart payload. Quantity is implicit:
// adding always means one more of (id, size).
type AddItemRequest struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Price string `json:"price" binding:"required"`
	Image string `json:"image"`
	Size  string `json:"size" binding:"required"`
}

// RemoveItemRequest identifies a line item by its uniqueness key
type RemoveItemRequest struct {
	ID   string `json:"id" binding:"required"`
	Size string `json:"size" binding:"required"`
}

// CartResponse represents the cart returned after any cart operation
type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Open  bool              `json:"open"`
	Total float64           `json:"total"`
}

func cartResponse(c *domain.Cart) CartResponse {
	total, _ := domain.CartTotal(c.Items).Float64()
	return CartResponse{
		Items: c.Items,
		Open:  c.Open,
		Total: total,
	}
}

// HandleGetCart handles GET /api/cart
func HandleGetCart(carts *cart.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, err := carts.Get(c.Request.Context(), cartSession(c))
		if err != nil {
			logger.Error("Failed to load cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(current))
	}
}

// HandleAddItem handles POST /api/cart/items
func HandleAddItem(carts *cart.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		item := domain.CartItem{
			ID:    req.ID,
			Name:  req.Name,
			Price: req.Price,
			Image: req.Image,
			Size:  req.Size,
		}

		updated, err := carts.AddItem(c.Request.Context(), cartSession(c), item)
		if err != nil {
			if _, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to add cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"cart":         cartResponse(updated),
			"notification": req.Name + " added to cart",
		})
	}
}

// HandleRemoveItem handles DELETE /api/cart/items
func HandleRemoveItem(carts *cart.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RemoveItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		updated, err := carts.RemoveItem(c.Request.Context(), cartSession(c), req.ID, req.Size)
		if err != nil {
			logger.Error("Failed to remove cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(updated))
	}
}

// HandleClearCart handles POST /api/cart/clear
func HandleClearCart(carts *cart.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := carts.Clear(c.Request.Context(), cartSession(c)); err != nil {
			logger.Error("Failed to clear cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(&domain.Cart{Items: []domain.CartItem{}}))
	}
}

// HandleCartPanel handles POST /api/cart/open, /api/cart/close and
// /api/cart/toggle. Panel visibility is pure UI state, independent of the
// cart contents.
func HandleCartPanel(carts *cart.Service, logger *zap.Logger, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		session := cartSession(c)

		var updated *domain.Cart
		var err error
		switch action {
		case "open":
			updated, err = carts.SetOpen(ctx, session, true)
		case "close":
			updated, err = carts.SetOpen(ctx, session, false)
		default:
			updated, err = carts.Toggle(ctx, session)
		}

		if err != nil {
			logger.Error("Failed to update cart panel", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(updated))
	}
}

// HandleCheckout handles POST /api/cart/checkout. An empty cart is rejected
// before anything else happens; the payment gateway is never contacted.
func HandleCheckout(carts *cart.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, total, err := carts.Checkout(c.Request.Context(), cartSession(c))
		if err != nil {
			if _, ok := err.(*errors.ErrValidation); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to start checkout", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		totalMajor, _ := total.Float64()
		c.JSON(http.StatusOK, gin.H{
			"items": snapshot.Items,
			"total": totalMajor,
		})
	}
}
