package repository

import (
	"fmt"
	"strings"

	"real_estate/internal/domain"
)

var listingSortColumns = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"regularPrice":  "regular_price",
	"discountPrice": "discount_price",
	"name":          "name",
	"bedrooms":      "bedrooms",
	"bathrooms":     "bathrooms",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildSearchQuery turns a filter into a SELECT over listings with
// positional arguments. The filter is normalized on a copy.
func BuildSearchQuery(f domain.ListingFilter) (string, []interface{}) {
	f.Normalize()

	var (
		where []string
		args  []interface{}
	)
	bind := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.SearchTerm != "" {
		where = append(where, "name ILIKE "+bind("%"+likeEscaper.Replace(f.SearchTerm)+"%"))
	}
	switch f.Kind {
	case domain.ListingKindRent:
		where = append(where, "feature_rent = true")
	case domain.ListingKindSale:
		where = append(where, "feature_sell = true")
	}
	if f.Parking {
		where = append(where, "feature_parking = true")
	}
	if f.Furnished {
		where = append(where, "feature_furnished = true")
	}
	if f.Offer {
		where = append(where, "feature_offer = true")
	}
	if f.Verified {
		where = append(where, "verified = true")
	}
	if len(f.PropertyTypes) > 0 {
		where = append(where, "lower(type) = ANY("+bind(f.PropertyTypes)+")")
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(listingColumns)
	b.WriteString(" FROM listings")
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}

	dir := "DESC"
	if f.Ascending {
		dir = "ASC"
	}
	column := listingSortColumns[f.SortField]
	fmt.Fprintf(&b, " ORDER BY %s %s", column, dir)
	if column == "discount_price" {
		b.WriteString(" NULLS LAST")
	}
	fmt.Fprintf(&b, ", id %s", dir)

	b.WriteString(" LIMIT " + bind(f.Limit))
	b.WriteString(" OFFSET " + bind(f.Offset))

	return b.String(), args
}
