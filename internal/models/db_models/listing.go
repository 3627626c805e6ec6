package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ListingStatus string

const (
	ListingStatusDraft    ListingStatus = "draft"
	ListingStatusActive   ListingStatus = "active"
	ListingStatusPending  ListingStatus = "pending"
	ListingStatusSold     ListingStatus = "sold"
	ListingStatusRented   ListingStatus = "rented"
	ListingStatusArchived ListingStatus = "archived"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingStatusDraft, ListingStatusActive, ListingStatusPending,
		ListingStatusSold, ListingStatusRented, ListingStatusArchived:
		return true
	}
	return false
}

type Listing struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"index"`
	Title   string

	AddressLine1  *string
	AddressNumber *string
	City          *string
	StateCode     *string `gorm:"size:2"`

	// Minor units (centavos).
	Price     int64
	Bedrooms  *int
	Bathrooms *int

	// Uploaded media URLs.
	Media datatypes.JSON `gorm:"type:jsonb;default:'[]'"`

	Status ListingStatus `gorm:"index;default:draft"`

	Account Account `gorm:"foreignKey:OwnerID"`
}
