package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultMaxPrice = 100000000
	DefaultMaxSize  = 100000000
)

type Preferences struct {
	ID              uuid.UUID    `json:"id"`
	UserID          uuid.UUID    `json:"user"`
	User            *UserSummary `json:"userInfo,omitempty"`
	ListingType     []string     `json:"listingType"`
	PropertyTypes   []string     `json:"propertyTypes"`
	PreferredCities []string     `json:"preferredCities"`
	MinPrice        float64      `json:"minPrice"`
	MaxPrice        float64      `json:"maxPrice"`
	MinSize         float64      `json:"minSize"`
	MaxSize         float64      `json:"maxSize"`
	Unit            string       `json:"unit"`
	Bedrooms        int          `json:"bedrooms"`
	Bathrooms       int          `json:"bathrooms"`
	Furnished       bool         `json:"furnished"`
	Parking         bool         `json:"parking"`
	OfferOnly       bool         `json:"offerOnly"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// PreferencesInput mirrors Preferences minus identity. Pointers distinguish
// "absent, use default" from an explicit zero.
type PreferencesInput struct {
	ListingType     []string `json:"listingType" binding:"omitempty,dive,oneof=sell rent"`
	PropertyTypes   []string `json:"propertyTypes"`
	PreferredCities []string `json:"preferredCities"`
	MinPrice        *float64 `json:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice        *float64 `json:"maxPrice" binding:"omitempty,gte=0"`
	MinSize         *float64 `json:"minSize" binding:"omitempty,gte=0"`
	MaxSize         *float64 `json:"maxSize" binding:"omitempty,gte=0"`
	Unit            string   `json:"unit" binding:"omitempty,oneof=sqft acres"`
	Bedrooms        int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms       int      `json:"bathrooms" binding:"gte=0"`
	Furnished       bool     `json:"furnished"`
	Parking         bool     `json:"parking"`
	OfferOnly       bool     `json:"offerOnly"`
}

func (in *PreferencesInput) ToPreferences(userID uuid.UUID) *Preferences {
	p := &Preferences{
		UserID:          userID,
		ListingType:     in.ListingType,
		PropertyTypes:   nonNil(in.PropertyTypes),
		PreferredCities: nonNil(in.PreferredCities),
		MinPrice:        valueOr(in.MinPrice, 0),
		MaxPrice:        valueOr(in.MaxPrice, DefaultMaxPrice),
		MinSize:         valueOr(in.MinSize, 0),
		MaxSize:         valueOr(in.MaxSize, DefaultMaxSize),
		Unit:            in.Unit,
		Bedrooms:        in.Bedrooms,
		Bathrooms:       in.Bathrooms,
		Furnished:       in.Furnished,
		Parking:         in.Parking,
		OfferOnly:       in.OfferOnly,
	}
	if len(p.ListingType) == 0 {
		p.ListingType = []string{"rent"}
	}
	if p.Unit == "" {
		p.Unit = SizeUnitSqft
	}
	return p
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// PreferenceAnalytics is the broker dashboard aggregation over all buyers'
// preferences.
type PreferenceAnalytics struct {
	TotalUsers         int            `json:"totalUsers"`
	CityCounts         map[string]int `json:"cityCounts"`
	PropertyTypeCounts map[string]int `json:"propertyTypeCounts"`
	ListingTypeCounts  map[string]int `json:"listingTypeCounts"`
	BudgetDistribution map[string]int `json:"budgetDistribution"`
}

const (
	BudgetUnder30L = "Under 30L"
	Budget30To50L  = "30L-50L"
	Budget50LTo1Cr = "50L-1Cr"
	Budget1CrPlus  = "1Cr+"
)

// BudgetBucket classifies the midpoint of a price range.
func BudgetBucket(minPrice, maxPrice float64) string {
	avg := (minPrice + maxPrice) / 2
	switch {
	case avg < 3000000:
		return BudgetUnder30L
	case avg <= 5000000:
		return Budget30To50L
	case avg <= 10000000:
		return Budget50LTo1Cr
	default:
		return Budget1CrPlus
	}
}

func AnalyzePreferences(prefs []*Preferences) *PreferenceAnalytics {
	a := &PreferenceAnalytics{
		TotalUsers:         len(prefs),
		CityCounts:         map[string]int{},
		PropertyTypeCounts: map[string]int{"Apartment": 0, "Villa": 0, "Commercial": 0, "Land": 0},
		ListingTypeCounts:  map[string]int{"sell": 0, "rent": 0},
		BudgetDistribution: map[string]int{BudgetUnder30L: 0, Budget30To50L: 0, Budget50LTo1Cr: 0, Budget1CrPlus: 0},
	}
	for _, p := range prefs {
		for _, c := range p.PreferredCities {
			a.CityCounts[c]++
		}
		for _, t := range p.PropertyTypes {
			a.PropertyTypeCounts[t]++
		}
		for _, t := range p.ListingType {
			a.ListingTypeCounts[t]++
		}
		a.BudgetDistribution[BudgetBucket(p.MinPrice, p.MaxPrice)]++
	}
	return a
}
