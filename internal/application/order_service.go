package application

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/velora-shop/velora-api/internal/domain/entity"
	repo "github.com/velora-shop/velora-api/internal/domain/repository"
	"github.com/velora-shop/velora-api/pkg/helpers"
	"github.com/velora-shop/velora-api/pkg/mailer"
	"github.com/velora-shop/velora-api/pkg/payment"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderService drives checkout: it turns the cart into priced line items
// for the payment provider, and records an order once the shopper comes
// back with a payment reference. The confirmation email is best effort.
type OrderService struct {
	Orders   repo.OrderRepository
	Users    repo.UserRepository
	Products repo.ProductRepository
	Payments *payment.Client
	Pub      *helpers.RabbitPublisher
	Currency string
	Logger   *logrus.Logger
}

func NewOrderService(orders repo.OrderRepository, users repo.UserRepository, products repo.ProductRepository, payments *payment.Client, pub *helpers.RabbitPublisher, currency string, logger *logrus.Logger) *OrderService {
	return &OrderService{
		Orders:   orders,
		Users:    users,
		Products: products,
		Payments: payments,
		Pub:      pub,
		Currency: currency,
		Logger:   logger,
	}
}

// lineItems joins the cart against the catalog. Cart entries whose product
// no longer exists are skipped; zero quantities are skipped.
func (s *OrderService) lineItems(ctx context.Context, cart entity.Cart) ([]payment.LineItem, float64, error) {
	ids := make([]int64, 0, len(cart))
	for key := range cart {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, 0, nil
	}

	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[entity.ItemKey(p.ID)] = p
	}

	items := make([]payment.LineItem, 0, len(cart))
	var total float64
	for key, sizes := range cart {
		p, ok := byID[key]
		if !ok {
			continue
		}
		for size, qty := range sizes {
			if qty <= 0 {
				continue
			}
			items = append(items, payment.LineItem{
				Name:      p.Name + " (" + size + ")",
				Quantity:  qty,
				UnitPrice: p.NewPrice,
			})
			total += p.NewPrice * float64(qty)
		}
	}
	return items, total, nil
}

// Checkout creates a payment session for the user's current cart.
func (s *OrderService) Checkout(ctx context.Context, userID, successURL, cancelURL string) (payment.Session, error) {
	cart, err := s.Users.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return payment.Session{}, ErrUserNotFound
		}
		return payment.Session{}, err
	}

	items, _, err := s.lineItems(ctx, cart)
	if err != nil {
		return payment.Session{}, err
	}
	if len(items) == 0 {
		return payment.Session{}, ErrEmptyCart
	}

	return s.Payments.CreateCheckoutSession(ctx, items, successURL, cancelURL)
}

// CreateOrder persists an order for the user's cart, clears the cart, and
// enqueues a confirmation email. The email enqueue is not part of the unit
// of work: a broker hiccup does not fail the order.
func (s *OrderService) CreateOrder(ctx context.Context, userID, paymentRef, address string) (*entity.Order, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	items, total, err := s.lineItems(ctx, u.Cart)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	o := &entity.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		PaymentRef: paymentRef,
		Address:    address,
		Amount:     total,
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, err
	}

	if err := s.Users.ReplaceCart(ctx, userID, entity.Cart{}); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("cart clear after order failed")
	}

	if s.Pub != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: "order_confirmation",
			Data: map[string]any{
				"Name":       u.Name,
				"OrderID":    o.ID,
				"PaymentRef": o.PaymentRef,
				"Amount":     o.Amount,
				"Currency":   s.Currency,
				"Address":    o.Address,
			},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("order_id", o.ID).Warn("order email enqueue failed")
		}
	}

	return o, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]entity.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}
