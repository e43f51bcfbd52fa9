package domain

import (
	"github.com/google/uuid"
)

// SavedSet is one user's saved listings, oldest first.
type SavedSet struct {
	UserID     uuid.UUID   `json:"userRef"`
	ListingIDs []uuid.UUID `json:"listings"`
}

type SavedListings struct {
	User     *UserSummary `json:"user"`
	Listings []*Listing   `json:"listings"`
}

type ListingThumb struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image"`
}

// InterestedUser is a user who saved at least one of a broker's listings.
type InterestedUser struct {
	User            *UserSummary    `json:"user"`
	MatchedListings []*ListingThumb `json:"matchedListings"`
}
