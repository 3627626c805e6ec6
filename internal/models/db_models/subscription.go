package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusPastDue  SubscriptionStatus = "past_due"
	SubStatusCanceled SubscriptionStatus = "canceled"
	SubStatusExpired  SubscriptionStatus = "expired"
)

// PlanTeam is what a paid Founding 100 member receives, 24 months prepaid.
const PlanTeam = "TEAM"

type Subscription struct {
	BaseModel
	UserID uuid.UUID `gorm:"index"`
	PlanID string    `gorm:"index"`

	Status             SubscriptionStatus `gorm:"index"`
	CurrentPeriodStart int64              `gorm:"not null"`
	CurrentPeriodEnd   int64              `gorm:"not null"`
	CanceledAt         *int64
	CancelAtPeriodEnd  bool `gorm:"default:false"`

	StripeCustomerID     string `gorm:"index"`
	StripeSubscriptionID string `gorm:"index"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account Account `gorm:"foreignKey:UserID"`
}
