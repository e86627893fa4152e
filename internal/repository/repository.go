package repository

import (
	"context"

	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/domain"
)

// ProductFilter defines filter and ordering criteria for listing products.
type ProductFilter struct {
	Category *string
	Limit    int
	SortBy   string
	Order    string
}

// ProductRepository defines product persistence operations. Products are
// created once and read many times; the only mutation path is the rating
// aggregate maintained through RefreshAggregate.
type ProductRepository interface {
	// Create inserts a new product into the store.
	Create(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// List returns products matching the given filter.
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)

	// RefreshAggregate re-derives the product's rating aggregate from the
	// full rating log under per-product serialization: concurrent calls
	// for the same product serialize, calls for different products do not
	// block each other, and each derivation observes every rating that was
	// durable before it acquired the product. Deriving from the full log
	// makes the operation idempotent, so it serves both the submission
	// path and the recovery retry after a failed refresh.
	RefreshAggregate(ctx context.Context, productID string) error
}

// RatingRepository defines rating persistence operations. The rating log is
// append-only.
type RatingRepository interface {
	// Create durably appends a new rating.
	Create(ctx context.Context, rating *domain.Rating) error

	// ListByProduct returns all ratings for a product, newest first. Each
	// call re-reads full current state; result sets are small enough that
	// no cursor is needed.
	ListByProduct(ctx context.Context, productID string) ([]domain.Rating, error)
}
