package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/velora-shop/velora-api/internal/domain/entity"
	repo "github.com/velora-shop/velora-api/internal/domain/repository"
)

// CartService owns per-user item/size quantity state. It never reads the
// whole cart to mutate it: every add and remove is a single atomic store
// operation, so concurrent requests for the same user cannot lose an
// update.
type CartService struct {
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewCartService(users repo.UserRepository, logger *logrus.Logger) *CartService {
	return &CartService{Users: users, Logger: logger}
}

// Add increments the quantity for (productID, size), creating the entry
// lazily when absent.
func (s *CartService) Add(ctx context.Context, userID string, productID int64, size string) error {
	err := s.Users.IncrementCartItem(ctx, userID, productID, size)
	if err != nil && errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// Remove decrements the quantity for (productID, size). At zero it is a
// no-op, never a negative quantity and never an error.
func (s *CartService) Remove(ctx context.Context, userID string, productID int64, size string) error {
	err := s.Users.DecrementCartItem(ctx, userID, productID, size)
	if err != nil && errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func (s *CartService) Get(ctx context.Context, userID string) (entity.Cart, error) {
	cart, err := s.Users.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if cart == nil {
		cart = entity.Cart{}
	}
	return cart, nil
}
