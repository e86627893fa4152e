package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/domain"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/repository"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/database"
	apperrors "github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/errors"
)

// sortColumns maps the public sort keys onto the columns they order by.
// Queries must never interpolate caller input directly.
var sortColumns = map[string]string{
	domain.SortByCreatedAt:     "created_at",
	domain.SortByPrice:         "price",
	domain.SortByName:          "name",
	domain.SortByAverageRating: "average_rating",
}

// ProductRepository implements repository.ProductRepository using PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product into the database.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, category, price, image_url, rating_sum, ratings_count, average_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, 0, 0, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Category,
		p.Price,
		p.ImageURL,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, description, category, price, image_url, average_rating, ratings_count, created_at, updated_at
		FROM products
		WHERE id = $1`

	var p domain.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.ImageURL,
		&p.AverageRating,
		&p.RatingsCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return &p, nil
}

// List returns products matching the given filter.
func (r *ProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = sortColumns[domain.SortByCreatedAt]
	}
	direction := "ASC"
	if filter.Order == domain.OrderDesc {
		direction = "DESC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var (
		query string
		args  []any
	)

	if filter.Category != nil {
		query = fmt.Sprintf(`
			SELECT id, name, description, category, price, image_url, average_rating, ratings_count, created_at, updated_at
			FROM products
			WHERE category = $1
			ORDER BY %s %s
			LIMIT $2`, column, direction)
		args = []any{*filter.Category, limit}
	} else {
		query = fmt.Sprintf(`
			SELECT id, name, description, category, price, image_url, average_rating, ratings_count, created_at, updated_at
			FROM products
			ORDER BY %s %s
			LIMIT $1`, column, direction)
		args = []any{limit}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Category,
			&p.Price,
			&p.ImageURL,
			&p.AverageRating,
			&p.RatingsCount,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

// RefreshAggregate re-derives the stored aggregate from the ratings table.
// The product row is locked before the sums are read: concurrent refreshes
// of the same product serialize on the lock, and once it is granted the sum
// query runs on a fresh snapshot, so it sees every rating committed ahead of
// the lock. Summing the full log rather than incrementing keeps the write
// idempotent; redoing it after any interleaving lands on the same totals.
func (r *ProductRepository) RefreshAggregate(ctx context.Context, productID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, productID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("product", productID)
		}
		return fmt.Errorf("lock product: %w", err)
	}

	var (
		sum   int64
		count int
	)
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(rating), 0), COUNT(*) FROM ratings WHERE product_id = $1`,
		productID,
	).Scan(&sum, &count)
	if err != nil {
		return fmt.Errorf("sum ratings: %w", err)
	}

	var average float64
	if count > 0 {
		average = float64(sum) / float64(count)
	}

	query := `
		UPDATE products
		SET rating_sum = $2,
		    ratings_count = $3,
		    average_rating = $4,
		    updated_at = $5
		WHERE id = $1`

	if _, err := tx.Exec(ctx, query, productID, sum, count, average, time.Now().UTC()); err != nil {
		return fmt.Errorf("refresh aggregate: %w", err)
	}

	return tx.Commit(ctx)
}
