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

// SubmitRatingInput holds the parameters for submitting a rating.
type SubmitRatingInput struct {
	ProductID string
	UserID    string
	Rating    int
	Comment   string
}

// RatingListResult contains a product's ratings and their total count.
type RatingListResult struct {
	Ratings []domain.Rating
	Count   int
}

const (
	refreshAttempts = 3
	refreshBackoff  = 50 * time.Millisecond
)

// RatingService implements the business logic for rating operations.
type RatingService struct {
	ratings  repository.RatingRepository
	products repository.ProductRepository
	producer EventPublisher
	logger   *slog.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(ratings repository.RatingRepository, products repository.ProductRepository, producer EventPublisher, logger *slog.Logger) *RatingService {
	return &RatingService{
		ratings:  ratings,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// SubmitRating records a rating and refreshes the product's aggregate from
// the full rating log. Once the rating row is durable the submission is
// accepted: a refresh failure is repaired by a bounded retry and, failing
// that, logged for the next refresh to absorb, never surfaced to the caller.
func (s *RatingService) SubmitRating(ctx context.Context, input SubmitRatingInput) (*domain.Rating, error) {
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("productId is required")
	}
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("userId is required")
	}
	if !domain.IsValidScore(input.Rating) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("rating must be between %d and %d", domain.MinRating, domain.MaxRating))
	}

	rating := &domain.Rating{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.ratings.Create(ctx, rating); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", input.ProductID)
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}

	// The rating row is durable from here on; products are never deleted,
	// so any refresh error is repaired rather than surfaced.
	if err := s.products.RefreshAggregate(ctx, rating.ProductID); err != nil {
		s.repairAggregate(ctx, rating.ProductID, err)
	}

	s.logger.InfoContext(ctx, "rating submitted",
		slog.String("rating_id", rating.ID),
		slog.String("product_id", rating.ProductID),
		slog.String("user_id", rating.UserID),
		slog.Int("rating", rating.Rating),
	)

	s.publishRatingCreated(ctx, rating)

	return rating, nil
}

// ListRatings returns all ratings for a product, newest first, with the
// total count.
func (s *RatingService) ListRatings(ctx context.Context, productID string) (*RatingListResult, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("product", productID)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	ratings, err := s.ratings.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	return &RatingListResult{Ratings: ratings, Count: len(ratings)}, nil
}

// repairAggregate retries the refresh after a failure. Every refresh derives
// the aggregate from the full rating log under the product's lock, so a
// retry that interleaves with concurrent submissions still lands on the
// correct totals.
func (s *RatingService) repairAggregate(ctx context.Context, productID string, cause error) {
	s.logger.WarnContext(ctx, "rating aggregate refresh failed, retrying",
		slog.String("product_id", productID),
		slog.String("error", cause.Error()),
	)

	backoff := refreshBackoff
	var err error
	for attempt := 1; attempt <= refreshAttempts; attempt++ {
		if err = s.products.RefreshAggregate(ctx, productID); err == nil {
			return
		}
		if attempt < refreshAttempts {
			select {
			case <-ctx.Done():
				err = ctx.Err()
				attempt = refreshAttempts
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	// The rating row is durable; the next refresh absorbs it.
	s.logger.ErrorContext(ctx, "rating aggregate refresh exhausted retries",
		slog.String("product_id", productID),
		slog.String("error", err.Error()),
	)
}

func (s *RatingService) publishRatingCreated(ctx context.Context, rating *domain.Rating) {
	product, err := s.products.GetByID(ctx, rating.ProductID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load product for catalog.rating.created event",
			slog.String("product_id", rating.ProductID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.producer.PublishRatingCreated(ctx, rating, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish catalog.rating.created event",
			slog.String("rating_id", rating.ID),
			slog.String("product_id", rating.ProductID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}
}
