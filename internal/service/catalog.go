// Package service implements the business logic for the catalog: product
// management and rating submission with aggregate upkeep.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/domain"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/repository"
	apperrors "github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/errors"
)

// EventPublisher publishes domain events. Publishing is best effort; the
// services log failures and never surface them to callers.
type EventPublisher interface {
	PublishProductCreated(ctx context.Context, product *domain.Product) error
	PublishRatingCreated(ctx context.Context, rating *domain.Rating, product *domain.Product) error
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Price       float64
	ImageURL    string
}

// ListProductsInput holds the catalog query parameters.
type ListProductsInput struct {
	Category string
	Limit    int
	SortBy   string
	Order    string
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// CatalogService implements the business logic for product operations.
type CatalogService struct {
	repo     repository.ProductRepository
	producer EventPublisher
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.ProductRepository, producer EventPublisher, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// CreateProduct creates a new product with a zeroed rating aggregate.
func (s *CatalogService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish catalog.product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
		slog.String("category", product.Category),
	)

	return product, nil
}

// GetProduct retrieves a single product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

// ListProducts returns the catalog slice described by the input. Defaults
// keep the result stable for polling clients: createdAt ascending, 20 items.
func (s *CatalogService) ListProducts(ctx context.Context, input ListProductsInput) ([]domain.Product, error) {
	sortBy := input.SortBy
	if sortBy == "" {
		sortBy = domain.SortByCreatedAt
	}
	if !domain.IsValidSortBy(sortBy) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid sort key %q", input.SortBy))
	}

	order := input.Order
	if order == "" {
		order = domain.OrderAsc
	}
	if !domain.IsValidOrder(order) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid order %q", input.Order))
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filter := repository.ProductFilter{
		Limit:  limit,
		SortBy: sortBy,
		Order:  order,
	}
	if input.Category != "" {
		category := input.Category
		filter.Category = &category
	}

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}
