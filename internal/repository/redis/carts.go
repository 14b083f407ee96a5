package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/config"
	"github.com/blayzex/storefront-api/internal/domain"
)

// Carts are kept long enough to survive any realistic gap between visits.
const cartTTL = 30 * 24 * time.Hour

type cartRepository struct {
	client *goredis.Client
	logger *zap.Logger
}

// NewClient creates a Redis client from config and verifies connectivity
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// NewCartRepository creates a Redis-backed persisted cart store
func NewCartRepository(client *goredis.Client, logger *zap.Logger) *cartRepository {
	return &cartRepository{
		client: client,
		logger: logger,
	}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// Get loads the persisted cart for a session. A missing key or a payload
// that no longer unmarshals yields an empty cart; stale garbage must never
// take the storefront down.
func (r *cartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err == goredis.Nil {
		return &domain.Cart{Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		r.logger.Warn("Discarding malformed persisted cart",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return &domain.Cart{Items: []domain.CartItem{}}, nil
	}

	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}

	return &cart, nil
}

func (r *cartRepository) Save(ctx context.Context, sessionID string, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(sessionID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

func (r *cartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
