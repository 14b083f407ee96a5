package cart

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/domain"
	"github.com/blayzex/storefront-api/internal/repository"
	"github.com/blayzex/storefront-api/pkg/errors"
)

// Service owns the per-session cart lifecycle. Every mutation persists the
// full line-item list back to the store.
type Service struct {
	store  repository.CartRepository
	logger *zap.Logger
}

// NewService creates a new cart service
func NewService(store repository.CartRepository, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Get returns the current cart for a session
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return s.store.Get(ctx, sessionID)
}

// AddItem merges an item into the cart. An existing entry with the same
// (id, size) has its quantity incremented by one; otherwise a fresh entry
// with quantity 1 is appended. Adding opens the cart panel.
func (s *Service) AddItem(ctx context.Context, sessionID string, item domain.CartItem) (*domain.Cart, error) {
	if item.ID == "" || item.Size == "" {
		return nil, &errors.ErrValidation{Message: "item id and size are required"}
	}

	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range c.Items {
		if c.Items[i].ID == item.ID && c.Items[i].Size == item.Size {
			c.Items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = 1
		c.Items = append(c.Items, item)
	}

	c.Open = true

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	return c, nil
}

// RemoveItem deletes the entry matching (id, size). No-op if absent.
func (s *Service) RemoveItem(ctx context.Context, sessionID, id, size string) (*domain.Cart, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ID == id && item.Size == size {
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Clear empties the cart and removes the persisted representation
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// SetOpen sets the cart panel visibility
func (s *Service) SetOpen(ctx context.Context, sessionID string, open bool) (*domain.Cart, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Open = open

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Toggle flips the cart panel visibility
func (s *Service) Toggle(ctx context.Context, sessionID string) (*domain.Cart, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c.Open = !c.Open

	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Checkout validates the cart for checkout and returns the snapshot with
// its computed total in major units. The cart panel closes; nothing else
// happens here — no gateway call is made until the buyer submits the
// checkout form.
func (s *Service) Checkout(ctx context.Context, sessionID string) (*domain.Cart, decimal.Decimal, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if len(c.Items) == 0 {
		return nil, decimal.Zero, &errors.ErrValidation{Message: "cart is empty"}
	}

	c.Open = false
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, decimal.Zero, err
	}

	return c, domain.CartTotal(c.Items), nil
}
