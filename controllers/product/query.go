package productcontroller

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/junaidrashid-git/storefront-api/repository"
	"github.com/shopspring/decimal"
)

const (
	defaultLimit = 12
	maxLimit     = 100
	// maxPage keeps (page-1)*limit within an int32 offset.
	maxPage      = math.MaxInt32 / maxLimit
)

var (
	ErrInvalidPrice    = errors.New("invalid price bracket")
	ErrInvalidSort     = errors.New("invalid sort")
	ErrInvalidRating   = errors.New("invalid min_rating")
	ErrInvalidCategory = errors.New("invalid category_id")
)

type priceBracket struct {
	min, max *decimal.Decimal
}

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

var priceBrackets = map[string]priceBracket{
	"under-25": {max: bound(25)},
	"25-50":    {min: bound(25), max: bound(50)},
	"50-100":   {min: bound(50), max: bound(100)},
	"over-100": {min: bound(100)},
}

// ParseProductQuery reads catalog filters, sorting and paging from query
// parameters. Missing or malformed page/limit fall back to defaults; other
// malformed values are errors.
func ParseProductQuery(v url.Values) (repository.ProductQuery, error) {
	q := repository.ProductQuery{
		Search: strings.TrimSpace(v.Get("search")),
		Color:  strings.TrimSpace(v.Get("color")),
		Size:   strings.TrimSpace(v.Get("size")),
		Sort:   repository.SortNewest,
		Page:   1,
		Limit:  defaultLimit,
	}

	if cat := strings.TrimSpace(v.Get("category")); cat != "" && cat != "all" {
		q.CategorySlug = cat
	}
	if raw := v.Get("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return q, ErrInvalidCategory
		}
		cid := uint(id)
		q.CategoryID = &cid
	}

	if raw := v.Get("price"); raw != "" && raw != "all" {
		b, ok := priceBrackets[raw]
		if !ok {
			return q, ErrInvalidPrice
		}
		q.MinPrice, q.MaxPrice = b.min, b.max
	}

	if raw := v.Get("min_rating"); raw != "" {
		r, err := decimal.NewFromString(raw)
		if err != nil || r.IsNegative() || r.GreaterThan(decimal.NewFromInt(5)) {
			return q, ErrInvalidRating
		}
		q.MinRating = &r
	}

	q.InStock, _ = strconv.ParseBool(v.Get("in_stock"))

	if raw := v.Get("sort"); raw != "" {
		q.Sort = repository.SortKey(raw)
		if !q.Sort.Valid() {
			return q, ErrInvalidSort
		}
	}

	if p, err := strconv.Atoi(v.Get("page")); err == nil && p > 0 {
		q.Page = min(p, maxPage)
	}
	if l, err := strconv.Atoi(v.Get("limit")); err == nil {
		q.Limit = min(max(l, 1), maxLimit)
	}
	return q, nil
}
