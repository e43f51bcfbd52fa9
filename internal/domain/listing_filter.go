package domain

import (
	"fmt"
	"sort"
	"strings"
)

const (
	DefaultSearchLimit = 9
	DefaultSortField   = "createdAt"
)

type ListingKind string

const (
	ListingKindAll  ListingKind = "all"
	ListingKindRent ListingKind = "rent"
	ListingKindSale ListingKind = "sale"
)

// SortableListingFields are the accepted sort keys. Anything else falls
// back to DefaultSortField.
var SortableListingFields = map[string]bool{
	"createdAt":     true,
	"updatedAt":     true,
	"regularPrice":  true,
	"discountPrice": true,
	"name":          true,
	"bedrooms":      true,
	"bathrooms":     true,
}

type ListingFilter struct {
	SearchTerm    string
	Kind          ListingKind
	Parking       bool
	Furnished     bool
	Offer         bool
	Verified      bool
	PropertyTypes []string
	SortField     string
	Ascending     bool
	Offset        int
	Limit         int
}

// Normalize applies defaults and lowercases property types so that two
// filters describing the same query compare equal.
func (f *ListingFilter) Normalize() {
	if f.Kind != ListingKindRent && f.Kind != ListingKindSale {
		f.Kind = ListingKindAll
	}
	if !SortableListingFields[f.SortField] {
		f.SortField = DefaultSortField
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultSearchLimit
	}

	types := make([]string, 0, len(f.PropertyTypes))
	for _, t := range f.PropertyTypes {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			types = append(types, t)
		}
	}
	sort.Strings(types)
	f.PropertyTypes = types
}

// Matches is the in-process form of the search predicate built by the SQL
// query builder. Pagination and ordering are not part of it.
func (f *ListingFilter) Matches(l *Listing) bool {
	if f.SearchTerm != "" && !strings.Contains(strings.ToLower(l.Name), strings.ToLower(f.SearchTerm)) {
		return false
	}
	switch f.Kind {
	case ListingKindRent:
		if !l.Features.Rent {
			return false
		}
	case ListingKindSale:
		if !l.Features.Sell {
			return false
		}
	}
	if f.Parking && !l.Features.Parking {
		return false
	}
	if f.Furnished && !l.Features.Furnished {
		return false
	}
	if f.Offer && !l.Features.Offer {
		return false
	}
	if f.Verified && !l.Verified {
		return false
	}
	if len(f.PropertyTypes) > 0 {
		listingType := strings.ToLower(l.Type)
		found := false
		for _, t := range f.PropertyTypes {
			if t == listingType {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CacheKey is a canonical encoding of the filter.
func (f *ListingFilter) CacheKey() string {
	order := "desc"
	if f.Ascending {
		order = "asc"
	}
	return fmt.Sprintf("q=%s|kind=%s|parking=%t|furnished=%t|offer=%t|verified=%t|types=%s|sort=%s|order=%s|offset=%d|limit=%d",
		strings.ToLower(f.SearchTerm), f.Kind, f.Parking, f.Furnished, f.Offer, f.Verified,
		strings.Join(f.PropertyTypes, ","), f.SortField, order, f.Offset, f.Limit)
}
