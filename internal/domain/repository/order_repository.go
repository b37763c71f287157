package repository

import (
	"context"

	"github.com/velora-shop/velora-api/internal/domain/entity"
)

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	ListByUser(ctx context.Context, userID string) ([]entity.Order, error)
}
