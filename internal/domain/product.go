package domain

import (
	"math"
	"time"
)

// Well-known catalog categories. Products may also carry free-form category
// values; these constants only name the sections the storefront renders.
const (
	CategoryCottonLace    = "Cotton Lace"
	CategoryPolyesterLace = "Polyester Lace"
	CategoryDesignerSaree = "Designer Saree"
	CategoryKurti         = "Kurti"
)

// Sort keys accepted by the catalog list query.
const (
	SortByCreatedAt     = "createdAt"
	SortByPrice         = "price"
	SortByName          = "name"
	SortByAverageRating = "averageRating"
)

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Product is a catalog entry. AverageRating and RatingsCount are derived
// fields owned by the rating aggregation path; nothing else writes them.
// AverageRating is stored at full precision, display rounding happens in the
// HTTP layer.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"imageUrl"`
	AverageRating float64   `json:"averageRating"`
	RatingsCount  int       `json:"ratingsCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DisplayRating returns the average rounded to one decimal place.
func (p *Product) DisplayRating() float64 {
	return math.Round(p.AverageRating*10) / 10
}

// KnownCategories returns the fixed catalog sections.
func KnownCategories() []string {
	return []string{
		CategoryCottonLace,
		CategoryPolyesterLace,
		CategoryDesignerSaree,
		CategoryKurti,
	}
}

// ValidSortBys returns the accepted sort keys for catalog listing.
func ValidSortBys() []string {
	return []string{SortByCreatedAt, SortByPrice, SortByName, SortByAverageRating}
}

// IsValidSortBy checks whether the given sort key is accepted.
func IsValidSortBy(sortBy string) bool {
	for _, s := range ValidSortBys() {
		if s == sortBy {
			return true
		}
	}
	return false
}

// IsValidOrder checks whether the given sort order is accepted.
func IsValidOrder(order string) bool {
	return order == OrderAsc || order == OrderDesc
}
