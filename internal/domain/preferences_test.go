package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPreferencesInputDefaults(t *testing.T) {
	userID := uuid.New()
	p := (&PreferencesInput{}).ToPreferences(userID)

	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, []string{"rent"}, p.ListingType)
	assert.Equal(t, float64(DefaultMaxPrice), p.MaxPrice)
	assert.Equal(t, float64(DefaultMaxSize), p.MaxSize)
	assert.Equal(t, SizeUnitSqft, p.Unit)
	assert.NotNil(t, p.PreferredCities)
}

func TestBudgetBucket(t *testing.T) {
	assert.Equal(t, BudgetUnder30L, BudgetBucket(0, 5999998))
	assert.Equal(t, Budget30To50L, BudgetBucket(3000000, 3000000))
	assert.Equal(t, Budget30To50L, BudgetBucket(4000000, 6000000))
	assert.Equal(t, Budget50LTo1Cr, BudgetBucket(9000000, 11000000))
	assert.Equal(t, Budget1CrPlus, BudgetBucket(0, DefaultMaxPrice))
}

func TestAnalyzePreferences(t *testing.T) {
	prefs := []*Preferences{
		{PreferredCities: []string{"Pune", "Mumbai"}, PropertyTypes: []string{"Villa"}, ListingType: []string{"sell"}, MinPrice: 0, MaxPrice: 2000000},
		{PreferredCities: []string{"Pune"}, PropertyTypes: []string{"Apartment", "Office"}, ListingType: []string{"rent", "sell"}, MinPrice: 0, MaxPrice: DefaultMaxPrice},
	}

	a := AnalyzePreferences(prefs)
	assert.Equal(t, 2, a.TotalUsers)
	assert.Equal(t, map[string]int{"Pune": 2, "Mumbai": 1}, a.CityCounts)
	assert.Equal(t, 1, a.PropertyTypeCounts["Villa"])
	assert.Equal(t, 1, a.PropertyTypeCounts["Office"])
	assert.Equal(t, 0, a.PropertyTypeCounts["Land"])
	assert.Equal(t, map[string]int{"sell": 2, "rent": 1}, a.ListingTypeCounts)
	assert.Equal(t, 1, a.BudgetDistribution[BudgetUnder30L])
	assert.Equal(t, 1, a.BudgetDistribution[Budget1CrPlus])
}
