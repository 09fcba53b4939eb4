package repository

import (
	"github.com/shopspring/decimal"
)

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortPopular   SortKey = "popular"
	SortRating    SortKey = "rating"
)

var orderClauses = map[SortKey]string{
	SortNewest:    "products.created_at DESC",
	SortPriceAsc:  "products.price ASC",
	SortPriceDesc: "products.price DESC",
	SortPopular:   "products.popularity DESC",
	SortRating:    "products.rating DESC",
}

// Valid reports whether k is one of the supported sort keys.
func (k SortKey) Valid() bool {
	_, ok := orderClauses[k]
	return ok
}

func (k SortKey) orderClause() string {
	if clause, ok := orderClauses[k]; ok {
		return clause + ", products.id ASC"
	}
	return orderClauses[SortNewest] + ", products.id ASC"
}

// ProductQuery is a parsed catalog listing request.
// MinPrice is inclusive and MaxPrice exclusive.
type ProductQuery struct {
	Search       string
	CategoryID   *uint
	CategorySlug string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Color        string
	Size         string
	MinRating    *decimal.Decimal
	InStock      bool
	Sort         SortKey
	Page         int
	Limit        int
}

func (q ProductQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// TotalPages is ceil(total / Limit).
func (q ProductQuery) TotalPages(total int64) int {
	if q.Limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(q.Limit) - 1) / int64(q.Limit))
}
