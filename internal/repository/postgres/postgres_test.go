package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/domain"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/repository"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/database"
	apperrors "github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────────────────────

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return mock
}

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

var productColumns = []string{
	"id", "name", "description", "category", "price", "image_url",
	"average_rating", "ratings_count", "created_at", "updated_at",
}

func sampleProduct() domain.Product {
	return domain.Product{
		ID:            "prod-1",
		Name:          "Floral Cotton Lace",
		Description:   "Soft cotton lace with a floral border",
		Category:      domain.CategoryCottonLace,
		Price:         149.0,
		ImageURL:      "https://cdn.example.com/lace.jpg",
		AverageRating: 4.25,
		RatingsCount:  4,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func productRow(p domain.Product) []any {
	return []any{
		p.ID, p.Name, p.Description, p.Category, p.Price, p.ImageURL,
		p.AverageRating, p.RatingsCount, p.CreatedAt, p.UpdatedAt,
	}
}

var ratingColumns = []string{
	"id", "product_id", "user_id", "rating", "comment", "created_at",
}

func sampleRating() domain.Rating {
	return domain.Rating{
		ID:        "rating-1",
		ProductID: "prod-1",
		UserID:    "user-1",
		Rating:    5,
		Comment:   "Beautiful weave",
		CreatedAt: now,
	}
}

func ratingRow(r domain.Rating) []any {
	return []any{r.ID, r.ProductID, r.UserID, r.Rating, r.Comment, r.CreatedAt}
}

// ─────────────────────────────────────────────────────────────────────────────
// ProductRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestProductRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()

	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, p.Name, p.Description, p.Category, p.Price, p.ImageURL, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Create_DBError(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()

	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, p.Name, p.Description, p.Category, p.Price, p.ImageURL, p.CreatedAt, p.UpdatedAt).
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), &p)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectQuery("SELECT .+ FROM products WHERE id").
		WithArgs(p.ID).
		WillReturnRows(
			pgxmock.NewRows(productColumns).AddRow(productRow(p)...),
		)

	result, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, result.ID)
	assert.Equal(t, p.Name, result.Name)
	assert.Equal(t, p.AverageRating, result.AverageRating)
	assert.Equal(t, p.RatingsCount, result.RatingsCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM products WHERE id").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.GetByID(context.Background(), "missing-id")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	mock.ExpectQuery("SELECT .+ FROM products ORDER BY created_at ASC").
		WithArgs(20).
		WillReturnRows(
			pgxmock.NewRows(productColumns).AddRow(productRow(p)...),
		)

	result, err := repo.List(context.Background(), repository.ProductFilter{
		SortBy: domain.SortByCreatedAt,
		Order:  domain.OrderAsc,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, p.ID, result[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_CategoryFilter(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	p := sampleProduct()
	category := domain.CategoryCottonLace

	mock.ExpectQuery("SELECT .+ FROM products WHERE category = .. ORDER BY price DESC").
		WithArgs(category, 5).
		WillReturnRows(
			pgxmock.NewRows(productColumns).AddRow(productRow(p)...),
		)

	result, err := repo.List(context.Background(), repository.ProductFilter{
		Category: &category,
		Limit:    5,
		SortBy:   domain.SortByPrice,
		Order:    domain.OrderDesc,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List_UnknownSortFallsBackToCreatedAt(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM products ORDER BY created_at ASC").
		WithArgs(20).
		WillReturnRows(pgxmock.NewRows(productColumns))

	result, err := repo.List(context.Background(), repository.ProductFilter{SortBy: "bogus"})
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_RefreshAggregate_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id = .+ FOR UPDATE").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("prod-1"))
	mock.ExpectQuery("SELECT .+ FROM ratings WHERE product_id").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"sum", "count"}).AddRow(int64(12), 3))
	mock.ExpectExec("UPDATE products SET rating_sum").
		WithArgs("prod-1", int64(12), 3, 4.0, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.RefreshAggregate(context.Background(), "prod-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_RefreshAggregate_EmptyLogZeroes(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id = .+ FOR UPDATE").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("prod-1"))
	mock.ExpectQuery("SELECT .+ FROM ratings WHERE product_id").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"sum", "count"}).AddRow(int64(0), 0))
	mock.ExpectExec("UPDATE products SET rating_sum").
		WithArgs("prod-1", int64(0), 0, 0.0, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.RefreshAggregate(context.Background(), "prod-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_RefreshAggregate_NotFound(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id = .+ FOR UPDATE").
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := repo.RefreshAggregate(context.Background(), "missing-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_RefreshAggregate_SumError(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewProductRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM products WHERE id = .+ FOR UPDATE").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("prod-1"))
	mock.ExpectQuery("SELECT .+ FROM ratings WHERE product_id").
		WithArgs("prod-1").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.RefreshAggregate(context.Background(), "prod-1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ─────────────────────────────────────────────────────────────────────────────
// RatingRepository
// ─────────────────────────────────────────────────────────────────────────────

func TestRatingRepository_Create_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	rv := sampleRating()

	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), &rv)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_Create_UnknownProduct(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	rv := sampleRating()
	rv.ProductID = "missing-id"

	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt).
		WillReturnError(errors.New(`ERROR: insert or update on table "ratings" violates foreign key constraint (SQLSTATE 23503)`))

	err := repo.Create(context.Background(), &rv)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_ListByProduct_Success(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	rv := sampleRating()
	mock.ExpectQuery("SELECT .+ FROM ratings WHERE product_id").
		WithArgs(rv.ProductID).
		WillReturnRows(
			pgxmock.NewRows(ratingColumns).AddRow(ratingRow(rv)...),
		)

	result, err := repo.ListByProduct(context.Background(), rv.ProductID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, rv.ID, result[0].ID)
	assert.Equal(t, rv.Rating, result[0].Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepository_ListByProduct_Empty(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()
	repo := NewRatingRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM ratings WHERE product_id").
		WithArgs("prod-1").
		WillReturnRows(pgxmock.NewRows(ratingColumns))

	result, err := repo.ListByProduct(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
