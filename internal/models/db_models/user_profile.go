package db_models

import "github.com/google/uuid"

// UserProfile is the one-per-account profile row. CRECI fields are optional
// at signup and can be completed later from the account page.
type UserProfile struct {
	BaseModel
	UserID   uuid.UUID `gorm:"uniqueIndex"`
	FullName string
	UserType string `gorm:"index"`

	CreciNumber *string `gorm:"index"`
	CreciUf     *string `gorm:"size:2"`
	CreciType   *string
	Phone       *string
	CompanyName *string

	OnboardingCompleted bool `gorm:"default:false"`
}
