// Package event publishes catalog domain events to Kafka. Publishing is
// best effort: callers log failures and carry on, the API response never
// depends on the broker.
package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/domain"
	pkgkafka "github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/kafka"
)

// Kafka topic constants for catalog domain events.
const (
	TopicProductCreated = "catalog.product.created"
	TopicRatingCreated  = "catalog.rating.created"
)

// Aggregate type constants.
const (
	AggregateTypeProduct = "product"
	AggregateTypeRating  = "rating"
)

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// ProductCreatedData is the payload for a catalog.product.created event.
type ProductCreatedData struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RatingCreatedData is the payload for a catalog.rating.created event. It
// carries the refreshed aggregate so consumers can sync without a read back.
type RatingCreatedData struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"productId"`
	UserID        string  `json:"userId"`
	Rating        int     `json:"rating"`
	Comment       string  `json:"comment,omitempty"`
	AverageRating float64 `json:"averageRating"`
	RatingsCount  int     `json:"ratingsCount"`
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishProductCreated publishes a catalog.product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	data := ProductCreatedData{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
	}

	event, err := pkgkafka.NewEvent(TopicProductCreated, product.ID, AggregateTypeProduct, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published catalog.product.created event",
		slog.String("product_id", product.ID),
	)

	return nil
}

// PublishRatingCreated publishes a catalog.rating.created event keyed by the
// product so consumers see one product's ratings in order.
func (p *Producer) PublishRatingCreated(ctx context.Context, rating *domain.Rating, product *domain.Product) error {
	data := RatingCreatedData{
		ID:            rating.ID,
		ProductID:     rating.ProductID,
		UserID:        rating.UserID,
		Rating:        rating.Rating,
		Comment:       rating.Comment,
		AverageRating: product.AverageRating,
		RatingsCount:  product.RatingsCount,
	}

	event, err := pkgkafka.NewEvent(TopicRatingCreated, rating.ProductID, AggregateTypeRating, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create rating.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicRatingCreated, event); err != nil {
		return fmt.Errorf("publish rating.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published catalog.rating.created event",
		slog.String("rating_id", rating.ID),
		slog.String("product_id", rating.ProductID),
	)

	return nil
}
