package productcontroller

import (
	"net/url"
	"testing"

	"github.com/junaidrashid-git/storefront-api/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductQueryDefaults(t *testing.T) {
	q, err := ParseProductQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, repository.SortNewest, q.Sort)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.Limit)
	assert.Nil(t, q.MinPrice)
	assert.Nil(t, q.MaxPrice)
	assert.Nil(t, q.CategoryID)
	assert.False(t, q.InStock)
}

func TestParseProductQueryFilters(t *testing.T) {
	q, err := ParseProductQuery(url.Values{
		"search":     {" linen "},
		"category":   {"shirts"},
		"price":      {"25-50"},
		"color":      {"Red"},
		"size":       {"M"},
		"min_rating": {"4.5"},
		"in_stock":   {"true"},
		"sort":       {"price-desc"},
		"page":       {"3"},
		"limit":      {"20"},
	})
	require.NoError(t, err)
	assert.Equal(t, "linen", q.Search)
	assert.Equal(t, "shirts", q.CategorySlug)
	assert.Equal(t, "25", q.MinPrice.String())
	assert.Equal(t, "50", q.MaxPrice.String())
	assert.Equal(t, "Red", q.Color)
	assert.Equal(t, "M", q.Size)
	assert.Equal(t, "4.5", q.MinRating.String())
	assert.True(t, q.InStock)
	assert.Equal(t, repository.SortPriceDesc, q.Sort)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, 40, q.Offset())
}

func TestParseProductQueryPriceBrackets(t *testing.T) {
	q, err := ParseProductQuery(url.Values{"price": {"under-25"}})
	require.NoError(t, err)
	assert.Nil(t, q.MinPrice)
	assert.Equal(t, "25", q.MaxPrice.String())

	q, err = ParseProductQuery(url.Values{"price": {"over-100"}})
	require.NoError(t, err)
	assert.Equal(t, "100", q.MinPrice.String())
	assert.Nil(t, q.MaxPrice)

	q, err = ParseProductQuery(url.Values{"price": {"all"}, "category": {"all"}})
	require.NoError(t, err)
	assert.Nil(t, q.MinPrice)
	assert.Empty(t, q.CategorySlug)
}

func TestParseProductQueryClampsPaging(t *testing.T) {
	q, err := ParseProductQuery(url.Values{"page": {"-2"}, "limit": {"1000"}})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 100, q.Limit)

	q, err = ParseProductQuery(url.Values{"page": {"abc"}, "limit": {"0"}})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 1, q.Limit)
}

func TestParseProductQueryRejectsBadValues(t *testing.T) {
	tests := map[string]struct {
		values url.Values
		want   error
	}{
		"price bracket":  {url.Values{"price": {"10-20"}}, ErrInvalidPrice},
		"sort":           {url.Values{"sort": {"cheapest"}}, ErrInvalidSort},
		"rating text":    {url.Values{"min_rating": {"good"}}, ErrInvalidRating},
		"rating range":   {url.Values{"min_rating": {"6"}}, ErrInvalidRating},
		"category id":    {url.Values{"category_id": {"x"}}, ErrInvalidCategory},
		"negative stars": {url.Values{"min_rating": {"-1"}}, ErrInvalidRating},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseProductQuery(tt.values)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseProductQueryCapsPage(t *testing.T) {
	q, err := ParseProductQuery(url.Values{"page": {"4611686018427387904"}, "limit": {"100"}})
	require.NoError(t, err)
	assert.Equal(t, maxPage, q.Page)
	assert.Positive(t, q.Offset())
}
