package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	f := ListingFilter{Kind: "whatever", SortField: "password", Offset: -3, Limit: 0, PropertyTypes: []string{" Villa", "", "apartment"}}
	f.Normalize()

	assert.Equal(t, ListingKindAll, f.Kind)
	assert.Equal(t, DefaultSortField, f.SortField)
	assert.Equal(t, 0, f.Offset)
	assert.Equal(t, DefaultSearchLimit, f.Limit)
	assert.Equal(t, []string{"apartment", "villa"}, f.PropertyTypes)
}

func TestMatches(t *testing.T) {
	rental := &Listing{Name: "Sea View Flat", Type: "Apartment", Features: Features{Rent: true, Parking: true}}
	sale := &Listing{Name: "Hill Villa", Type: "Villa", Features: Features{Sell: true, Offer: true}, Verified: true}

	cases := []struct {
		name   string
		filter ListingFilter
		rental bool
		sale   bool
	}{
		{"no constraints", ListingFilter{}, true, true},
		{"rent", ListingFilter{Kind: ListingKindRent}, true, false},
		{"sale", ListingFilter{Kind: ListingKindSale}, false, true},
		{"search is case-insensitive substring", ListingFilter{SearchTerm: "VIEW"}, true, false},
		{"parking", ListingFilter{Parking: true}, true, false},
		{"offer", ListingFilter{Offer: true}, false, true},
		{"verified", ListingFilter{Verified: true}, false, true},
		{"property types case-folded", ListingFilter{PropertyTypes: []string{"villa"}}, false, true},
		{"empty property types", ListingFilter{PropertyTypes: []string{}}, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.filter.Normalize()
			assert.Equal(t, tc.rental, tc.filter.Matches(rental))
			assert.Equal(t, tc.sale, tc.filter.Matches(sale))
		})
	}
}

func TestCacheKeyIsCanonical(t *testing.T) {
	a := ListingFilter{PropertyTypes: []string{"Villa", "apartment"}}
	b := ListingFilter{PropertyTypes: []string{"APARTMENT", "villa"}, SortField: "createdAt", Limit: 9}
	a.Normalize()
	b.Normalize()
	assert.Equal(t, a.CacheKey(), b.CacheKey())

	c := ListingFilter{Kind: ListingKindRent}
	c.Normalize()
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
}
