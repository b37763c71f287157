package application

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/velora-shop/velora-api/internal/domain/entity"
	repo "github.com/velora-shop/velora-api/internal/domain/repository"
	"github.com/velora-shop/velora-api/pkg/helpers"
)

const productListCacheKey = "products:all"

// relatedProductIDs is the fixed id set returned by Related. This is stub
// behavior carried over from the storefront contract, not a real
// relatedness computation.
var relatedProductIDs = []int64{1, 2, 3, 4}

// ProductService owns the catalog: CRUD, the storefront's derived listings,
// a Redis cache for the full list, and an Elasticsearch index for search.
// Redis and Elasticsearch are optional; a nil client degrades to going
// straight to Postgres and disabling search.
type ProductService struct {
	Repo     repo.ProductRepository
	Redis    *redis.Client
	CacheTTL time.Duration
	ES       *elasticsearch.Client
	ESIndex  string
	Logger   *logrus.Logger
}

func NewProductService(r repo.ProductRepository, rdb *redis.Client, cacheTTL time.Duration, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ProductService {
	return &ProductService{Repo: r, Redis: rdb, CacheTTL: cacheTTL, ES: es, ESIndex: esIndex, Logger: logger}
}

type CreateProductInput struct {
	Name        string
	Image       string
	Category    string
	NewPrice    float64
	OldPrice    float64
	Description string
	Sizes       []string
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*entity.Product, error) {
	p := &entity.Product{
		Name:        in.Name,
		Image:       in.Image,
		Category:    in.Category,
		NewPrice:    in.NewPrice,
		OldPrice:    in.OldPrice,
		Description: in.Description,
		Sizes:       in.Sizes,
		Available:   true,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx)
	s.indexProduct(ctx, p)
	return p, nil
}

// Delete removes a product. Unknown ids are fine: the endpoint is
// idempotent.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidateListCache(ctx)
	s.deleteFromIndex(ctx, id)
	return nil
}

// List returns every product in insertion order, served from the Redis
// cache when warm.
func (s *ProductService) List(ctx context.Context) ([]entity.Product, error) {
	if s.Redis != nil {
		var cached []entity.Product
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, productListCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	products, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, productListCacheKey, products, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("product cache set failed")
		}
	}
	return products, nil
}

// NewCollections drops the first product, then returns the last eight of
// the remainder. The windowing rule is preserved exactly as the storefront
// expects it.
func (s *ProductService) NewCollections(ctx context.Context) ([]entity.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) <= 1 {
		return []entity.Product{}, nil
	}
	rest := products[1:]
	if len(rest) > 8 {
		rest = rest[len(rest)-8:]
	}
	return rest, nil
}

// PopularInWomen returns the first four products in the "women" category.
func (s *ProductService) PopularInWomen(ctx context.Context) ([]entity.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, 4)
	for _, p := range products {
		if p.Category == "women" {
			out = append(out, p)
			if len(out) == 4 {
				break
			}
		}
	}
	return out, nil
}

// Related returns the fixed stub id set regardless of the product asked
// about.
func (s *ProductService) Related(ctx context.Context) ([]entity.Product, error) {
	return s.Repo.GetByIDs(ctx, relatedProductIDs)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*entity.Product, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ProductService) invalidateListCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, productListCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("product cache invalidation failed")
	}
}

func (s *ProductService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"category":    p.Category,
		"description": p.Description,
		"new_price":   p.NewPrice,
		"old_price":   p.OldPrice,
		"image":       p.Image,
		"available":   p.Available,
		"created_at":  p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(p.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

func (s *ProductService) deleteFromIndex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over name, category, and description.
func (s *ProductService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "category", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
