package repository

import (
	"context"

	"github.com/velora-shop/velora-api/internal/domain/entity"
)

// UserRepository defines the interface for account persistence.
//
// Cart state lives on the user row; the increment/decrement operations must
// be atomic at the store level so that concurrent mutations for the same
// user never lose an update.
type UserRepository interface {
	// Create inserts a new user. Returns ErrConflict when the email is
	// already registered; uniqueness is enforced by the store, not by a
	// prior read.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// IncrementCartItem adds one to the quantity for (productID, size),
	// creating the entry when absent. Returns ErrNotFound for an unknown
	// user.
	IncrementCartItem(ctx context.Context, id string, productID int64, size string) error
	// DecrementCartItem removes one from the quantity for (productID,
	// size), clamped at zero. Decrementing an absent entry is a no-op, not
	// an error.
	DecrementCartItem(ctx context.Context, id string, productID int64, size string) error
	GetCart(ctx context.Context, id string) (entity.Cart, error)
	// ReplaceCart overwrites the whole cart state (used to clear the cart
	// after an order).
	ReplaceCart(ctx context.Context, id string, cart entity.Cart) error
}
