package domain

import (
	"time"

	"github.com/google/uuid"
)

type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusRented    ListingStatus = "rented"
	ListingStatusPending   ListingStatus = "pending"
)

const (
	SizeUnitSqft  = "sqft"
	SizeUnitAcres = "acres"
)

// MaxListingImages caps the files accepted by one create or edit request.
const MaxListingImages = 4

type Address struct {
	PropertyName string `json:"propertyName" binding:"required"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	Country      string `json:"country" binding:"required"`
}

type Features struct {
	Sell      bool `json:"sell"`
	Rent      bool `json:"rent"`
	Parking   bool `json:"parking"`
	Furnished bool `json:"furnished"`
	Offer     bool `json:"offer"`
}

type Size struct {
	Value float64 `json:"value" binding:"required,gt=0"`
	Unit  string  `json:"unit" binding:"omitempty,oneof=sqft acres"`
}

type Listing struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Address       Address       `json:"address"`
	Features      Features      `json:"features"`
	RegularPrice  float64       `json:"regularPrice"`
	DiscountPrice *float64      `json:"discountPrice,omitempty"`
	Bedrooms      int           `json:"bedrooms"`
	Bathrooms     int           `json:"bathrooms"`
	Type          string        `json:"type"`
	Status        ListingStatus `json:"status"`
	Size          Size          `json:"size"`
	ImageURLs     []string      `json:"imageUrls"`
	UserRef       *uuid.UUID    `json:"userRef,omitempty"`
	Owner         *UserSummary  `json:"owner,omitempty"`
	Verified      bool          `json:"verified"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// FirstImage is the thumbnail used by broker dashboards.
func (l *Listing) FirstImage() string {
	if len(l.ImageURLs) == 0 {
		return ""
	}
	return l.ImageURLs[0]
}

func (l *Listing) IsOwnedBy(userID uuid.UUID) bool {
	return l.UserRef != nil && *l.UserRef == userID
}

// ListingInput is the single validation structure shared by create and edit.
// Features is a pointer so an explicit null still defaults to sell=true.
type ListingInput struct {
	Name          string        `json:"name" form:"name" binding:"required"`
	Description   string        `json:"description" form:"description" binding:"required"`
	Address       Address       `json:"address" binding:"required"`
	Features      *Features     `json:"features"`
	RegularPrice  float64       `json:"regularPrice" form:"regularPrice" binding:"required,gt=0"`
	DiscountPrice *float64      `json:"discountPrice" form:"discountPrice" binding:"omitempty,gte=0,ltefield=RegularPrice"`
	Bedrooms      int           `json:"bedrooms" form:"bedrooms" binding:"gte=0"`
	Bathrooms     int           `json:"bathrooms" form:"bathrooms" binding:"gte=0"`
	Type          string        `json:"type" form:"type" binding:"required"`
	Status        ListingStatus `json:"status" form:"status" binding:"omitempty,oneof=available sold rented pending"`
	Size          Size          `json:"size" binding:"required"`
	ImageURLs     []string      `json:"imageUrls" form:"imageUrls" binding:"omitempty,dive,required"`
}

// NewListingInput is the decode target for create and edit. Features are
// pre-filled so each key defaults on its own: a request that only sends
// {"parking":true} still lists the property for sale.
func NewListingInput() *ListingInput {
	return &ListingInput{Features: &Features{Sell: true}}
}

// Normalize fills defaults that the binding layer cannot express.
func (in *ListingInput) Normalize() {
	if in.Features == nil {
		in.Features = &Features{Sell: true}
	}
	if in.Status == "" {
		in.Status = ListingStatusAvailable
	}
	if in.Size.Unit == "" {
		in.Size.Unit = SizeUnitSqft
	}
}

// Apply copies the editable fields onto l. Verified and ownership are never
// touched here.
func (in *ListingInput) Apply(l *Listing, imageURLs []string) {
	in.Normalize()
	l.Name = in.Name
	l.Description = in.Description
	l.Address = in.Address
	l.Features = *in.Features
	l.RegularPrice = in.RegularPrice
	l.DiscountPrice = in.DiscountPrice
	l.Bedrooms = in.Bedrooms
	l.Bathrooms = in.Bathrooms
	l.Type = in.Type
	l.Status = in.Status
	l.Size = in.Size
	l.ImageURLs = imageURLs
	if l.ImageURLs == nil {
		l.ImageURLs = []string{}
	}
}
