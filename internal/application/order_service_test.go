package application

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-shop/velora-api/internal/domain/entity"
	"github.com/velora-shop/velora-api/pkg/payment"
)

type orderFixture struct {
	svc      *OrderService
	users    *fakeUserRepo
	products *fakeProductRepo
	orders   *fakeOrderRepo
	userID   string
}

func newOrderFixture(t *testing.T, gatewayURL string) *orderFixture {
	t.Helper()

	users := newFakeUserRepo()
	products := newFakeProductRepo()
	orders := &fakeOrderRepo{}

	ctx := context.Background()
	for _, name := range []string{"Blouse", "Hoodie", "Tee"} {
		require.NoError(t, products.Create(ctx, &entity.Product{
			Name: name, Category: "women", NewPrice: 25, OldPrice: 40, Available: true,
		}))
	}

	u := &entity.User{Email: "ada@example.com", Name: "Ada", Password: "x"}
	require.NoError(t, users.Create(ctx, u))

	pay := payment.NewClient(payment.Config{
		Provider: payment.ProviderStripe,
		APIURL:   gatewayURL,
		Currency: "usd",
		Timeout:  2 * time.Second,
	}, nil)

	return &orderFixture{
		svc:      NewOrderService(orders, users, products, pay, nil, "usd", nil),
		users:    users,
		products: products,
		orders:   orders,
		userID:   u.ID,
	}
}

func checkoutGateway(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":  "cs_test_123",
			"url": "https://checkout.example.com/cs_test_123",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOrderService_Checkout(t *testing.T) {
	t.Parallel()

	f := newOrderFixture(t, checkoutGateway(t).URL)
	ctx := context.Background()

	require.NoError(t, f.users.IncrementCartItem(ctx, f.userID, 1, "M"))
	require.NoError(t, f.users.IncrementCartItem(ctx, f.userID, 1, "M"))
	require.NoError(t, f.users.IncrementCartItem(ctx, f.userID, 2, "L"))

	sess, err := f.svc.Checkout(ctx, f.userID, "https://shop/success", "https://shop/cancel")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", sess.ID)
	assert.Equal(t, "https://checkout.example.com/cs_test_123", sess.URL)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	t.Parallel()

	f := newOrderFixture(t, checkoutGateway(t).URL)

	_, err := f.svc.Checkout(context.Background(), f.userID, "https://shop/success", "https://shop/cancel")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_Checkout_SkipsVanishedProducts(t *testing.T) {
	t.Parallel()

	f := newOrderFixture(t, checkoutGateway(t).URL)
	ctx := context.Background()

	require.NoError(t, f.users.IncrementCartItem(ctx, f.userID, 3, "M"))
	require.NoError(t, f.products.DeleteByID(ctx, 3))

	// The only cart entry points at a deleted product, so nothing is left
	// to price.
	_, err := f.svc.Checkout(ctx, f.userID, "https://shop/success", "https://shop/cancel")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_Checkout_UnknownUser(t *testing.T) {
	t.Parallel()

	f := newOrderFixture(t, checkoutGateway(t).URL)

	_, err := f.svc.Checkout(context.Background(), "no-such-id", "https://shop/success", "https://shop/cancel")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestOrderService_CreateOrder(t *testing.T) {
	t.Parallel()

	f := newOrderFixture(t, checkoutGateway(t).URL)
	ctx := context.Background()

	require.NoError(t, f.users.IncrementCartItem(ctx, f.userID, 1, "M"))
	require.NoError(t, f.users.IncrementCartItem(ctx, f.userID, 2, "S"))

	o, err := f.svc.CreateOrder(ctx, f.userID, "pi_abc123", "1 Example Street")
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.Equal(t, f.userID, o.UserID)
	assert.Equal(t, "pi_abc123", o.PaymentRef)
	assert.InDelta(t, 50.0, o.Amount, 0.001, "two items at 25 each")

	cart, err := f.users.GetCart(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, cart, "cart is cleared after the order")

	listed, err := f.svc.ListByUser(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, o.ID, listed[0].ID)
}

func TestOrderService_CreateOrder_EmptyCart(t *testing.T) {
	t.Parallel()

	f := newOrderFixture(t, checkoutGateway(t).URL)

	_, err := f.svc.CreateOrder(context.Background(), f.userID, "pi_abc123", "1 Example Street")
	assert.ErrorIs(t, err, ErrEmptyCart)
}
