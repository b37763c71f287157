package repository

import (
	"context"

	"github.com/velora-shop/velora-api/internal/domain/entity"
)

// ProductRepository defines the interface for catalog persistence.
// Identifiers are assigned by the store from a sequence, so concurrent
// creates always receive distinct ids.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Product, error)
	// List returns all products in insertion order.
	List(ctx context.Context) ([]entity.Product, error)
	// DeleteByID is idempotent: deleting an unknown id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}
