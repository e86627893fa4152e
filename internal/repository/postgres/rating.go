package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/domain"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/database"
	apperrors "github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/errors"
)

// RatingRepository implements rating persistence operations using PostgreSQL.
type RatingRepository struct {
	pool database.DBTX
}

// NewRatingRepository creates a new PostgreSQL-backed rating repository.
func NewRatingRepository(pool database.DBTX) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Create appends a new rating to the log.
func (r *RatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, product_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		rating.ID,
		rating.ProductID,
		rating.UserID,
		rating.Rating,
		rating.Comment,
		rating.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NotFound("product", rating.ProductID)
		}
		return fmt.Errorf("insert rating: %w", err)
	}

	return nil
}

// ListByProduct returns all ratings for a product, newest first.
func (r *RatingRepository) ListByProduct(ctx context.Context, productID string) ([]domain.Rating, error) {
	query := `
		SELECT id, product_id, user_id, rating, comment, created_at
		FROM ratings
		WHERE product_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []domain.Rating
	for rows.Next() {
		var rv domain.Rating
		if err := rows.Scan(
			&rv.ID,
			&rv.ProductID,
			&rv.UserID,
			&rv.Rating,
			&rv.Comment,
			&rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	if ratings == nil {
		ratings = []domain.Rating{}
	}

	return ratings, nil
}

// isForeignKeyViolation checks if the error is a PostgreSQL foreign key
// constraint violation (SQLSTATE 23503).
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23503")
}
