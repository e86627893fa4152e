// Package memory provides an in-memory implementation of the catalog
// repositories. It backs the STORE_DRIVER=memory mode used for local
// development and demos, and it owns its own per-product critical section so
// the aggregation contract holds without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/domain"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/repository"
	apperrors "github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/errors"
)

// entry holds a product together with its rating log. entry.mu guards every
// field, which scopes aggregate derivation to one product: concurrent
// writers to the same product serialize on it, writers to different
// products never share a lock.
type entry struct {
	mu      sync.Mutex
	product domain.Product
	ratings []domain.Rating
}

// Store is the shared in-memory state behind both repositories.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Products returns the product repository view of the store.
func (s *Store) Products() *ProductRepository {
	return &ProductRepository{store: s}
}

// Ratings returns the rating repository view of the store.
func (s *Store) Ratings() *RatingRepository {
	return &RatingRepository{store: s}
}

func (s *Store) lookup(id string) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// ProductRepository implements repository.ProductRepository in memory.
type ProductRepository struct {
	store *Store
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.entries[p.ID] = &entry{product: *p}
	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	e, ok := r.store.lookup(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	p := e.product
	return &p, nil
}

// List returns products matching the given filter.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	r.store.mu.RLock()
	products := make([]domain.Product, 0, len(r.store.entries))
	for _, e := range r.store.entries {
		e.mu.Lock()
		p := e.product
		e.mu.Unlock()
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		products = append(products, p)
	}
	r.store.mu.RUnlock()

	sortProducts(products, filter.SortBy, filter.Order)

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if len(products) > limit {
		products = products[:limit]
	}

	return products, nil
}

// RefreshAggregate re-derives the aggregate from the product's rating log
// under the product's own lock. Deriving from the full log keeps the write
// idempotent regardless of how refreshes interleave with appends.
func (r *ProductRepository) RefreshAggregate(ctx context.Context, productID string) error {
	e, ok := r.store.lookup(productID)
	if !ok {
		return apperrors.NotFound("product", productID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var sum int64
	for _, rv := range e.ratings {
		sum += int64(rv.Rating)
	}
	e.product.RatingsCount = len(e.ratings)
	if len(e.ratings) == 0 {
		e.product.AverageRating = 0
	} else {
		e.product.AverageRating = float64(sum) / float64(len(e.ratings))
	}
	return nil
}

// RatingRepository implements repository.RatingRepository in memory.
type RatingRepository struct {
	store *Store
}

var _ repository.RatingRepository = (*RatingRepository)(nil)

// Create appends a rating to its product's log.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	e, ok := r.store.lookup(rating.ProductID)
	if !ok {
		return apperrors.NotFound("product", rating.ProductID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.ratings = append(e.ratings, *rating)
	return nil
}

// ListByProduct returns all ratings for a product, newest first.
func (r *RatingRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Rating, error) {
	e, ok := r.store.lookup(productID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	e.mu.Lock()
	ratings := make([]domain.Rating, len(e.ratings))
	copy(ratings, e.ratings)
	e.mu.Unlock()

	// The log is append-ordered; newest first for display.
	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].CreatedAt.After(ratings[j].CreatedAt)
	})

	return ratings, nil
}

func sortProducts(products []domain.Product, sortBy, order string) {
	desc := order == domain.OrderDesc

	less := func(i, j int) bool {
		a, b := products[i], products[j]
		switch sortBy {
		case domain.SortByPrice:
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case domain.SortByName:
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c < 0
			}
		case domain.SortByAverageRating:
			if a.AverageRating != b.AverageRating {
				return a.AverageRating < b.AverageRating
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		// Tie-break on id for a stable order across polls.
		return a.ID < b.ID
	}

	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}
