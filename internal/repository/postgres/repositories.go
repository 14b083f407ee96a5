package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/blayzex/storefront-api/internal/repository"
)

// NewRepositories wires up the postgres-backed repositories. The cart
// repository lives in Redis and is attached by the caller.
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Order:      NewOrderRepository(db, logger),
		OrderEvent: NewOrderEventRepository(db, logger),
	}
}
