package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velora-shop/velora-api/internal/domain/entity"
	"github.com/velora-shop/velora-api/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts the product and lets the id sequence assign the
// identifier, so concurrent creates never collide.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if len(p.Sizes) == 0 {
		p.Sizes = entity.DefaultSizes
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, image, category, new_price, old_price, description, sizes, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, p.Name, p.Image, p.Category, p.NewPrice, p.OldPrice, p.Description, p.Sizes, p.Available)

	return row.Scan(&p.ID, &p.CreatedAt)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p := &entity.Product{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, image, category, new_price, old_price, description, sizes, available, created_at
		FROM products
		WHERE id = $1
	`, id)
	if err := scanProduct(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, image, category, new_price, old_price, description, sizes, available, created_at
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

// List returns all products ordered by id, i.e. insertion order.
func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, image, category, new_price, old_price, description, sizes, available, created_at
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *ProductRepository) DeleteByID(ctx context.Context, id int64) error {
	// Idempotent: zero rows affected is fine.
	_, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, p *entity.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Image, &p.Category, &p.NewPrice,
		&p.OldPrice, &p.Description, &p.Sizes, &p.Available, &p.CreatedAt)
}

func collectProducts(rows pgx.Rows) ([]entity.Product, error) {
	out := make([]entity.Product, 0)
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
