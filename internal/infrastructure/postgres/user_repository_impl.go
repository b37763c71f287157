package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velora-shop/velora-api/internal/domain/entity"
	"github.com/velora-shop/velora-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// isUniqueViolation reports whether err is a Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	cart := u.Cart
	if cart == nil {
		cart = entity.Cart{}
	}
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, cart)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, cartJSON)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	u.Cart = cart
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.get(ctx, `
		SELECT id, email, password_hash, name, cart, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.get(ctx, `
		SELECT id, email, password_hash, name, cart, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*entity.User, error) {
	u := &entity.User{}
	var cartJSON []byte

	row := r.pool.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &cartJSON,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(cartJSON, &u.Cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return u, nil
}

// IncrementCartItem bumps cart[product][size] by one in a single UPDATE.
// The row lock serializes concurrent mutations for the same user, so two
// rapid adds both land.
func (r *UserRepository) IncrementCartItem(ctx context.Context, id string, productID int64, size string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET cart = jsonb_set(
			jsonb_set(cart, ARRAY[$2], COALESCE(cart -> $2, '{}'::jsonb), true),
			ARRAY[$2, $3],
			to_jsonb(COALESCE((cart #>> ARRAY[$2, $3])::int, 0) + 1),
			true
		), updated_at = now()
		WHERE id = $1
	`, id, entity.ItemKey(productID), size)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DecrementCartItem lowers cart[product][size] by one, clamped at zero via
// GREATEST, in the same single-statement shape as IncrementCartItem.
func (r *UserRepository) DecrementCartItem(ctx context.Context, id string, productID int64, size string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET cart = jsonb_set(
			jsonb_set(cart, ARRAY[$2], COALESCE(cart -> $2, '{}'::jsonb), true),
			ARRAY[$2, $3],
			to_jsonb(GREATEST(COALESCE((cart #>> ARRAY[$2, $3])::int, 0) - 1, 0)),
			true
		), updated_at = now()
		WHERE id = $1
	`, id, entity.ItemKey(productID), size)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) GetCart(ctx context.Context, id string) (entity.Cart, error) {
	var cartJSON []byte
	row := r.pool.QueryRow(ctx, `SELECT cart FROM users WHERE id = $1`, id)
	if err := row.Scan(&cartJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	var cart entity.Cart
	if err := json.Unmarshal(cartJSON, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return cart, nil
}

func (r *UserRepository) ReplaceCart(ctx context.Context, id string, cart entity.Cart) error {
	if cart == nil {
		cart = entity.Cart{}
	}
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET cart = $2, updated_at = now() WHERE id = $1
	`, id, cartJSON)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
