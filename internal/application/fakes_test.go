package application

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/velora-shop/velora-api/internal/domain/entity"
	repo "github.com/velora-shop/velora-api/internal/domain/repository"
)

// fakeUserRepo is an in-memory UserRepository. All operations take the
// mutex, mirroring the atomicity the real store provides for cart
// mutations.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // keyed by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repo.ErrConflict
		}
	}
	u.ID = uuid.NewString()
	if u.Cart == nil {
		u.Cart = entity.Cart{}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) IncrementCartItem(_ context.Context, id string, productID int64, size string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Cart.Increment(productID, size)
	return nil
}

func (f *fakeUserRepo) DecrementCartItem(_ context.Context, id string, productID int64, size string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Cart.Decrement(productID, size)
	return nil
}

func (f *fakeUserRepo) GetCart(_ context.Context, id string) (entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	out := entity.Cart{}
	for k, sizes := range u.Cart {
		cp := make(map[string]int, len(sizes))
		for s, q := range sizes {
			cp[s] = q
		}
		out[k] = cp
	}
	return out, nil
}

func (f *fakeUserRepo) ReplaceCart(_ context.Context, id string, cart entity.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.Cart = cart
	return nil
}

// fakeProductRepo is an in-memory ProductRepository preserving insertion
// order.
type fakeProductRepo struct {
	mu       sync.Mutex
	nextID   int64
	products []entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{nextID: 1}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.nextID
	f.nextID++
	f.products = append(f.products, *p)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []int64) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]entity.Product, 0, len(ids))
	for _, p := range f.products {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeProductRepo) DeleteByID(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []entity.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Order, 0)
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}
