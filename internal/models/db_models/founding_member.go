package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusCanceled PaymentStatus = "canceled"
)

const (
	AccountTypeIndividual = "individual"
	AccountTypeCompany    = "company"
)

// FoundingMember is the Founding 100 enrollment/billing record. Created with
// payment_status=pending before the payment intent exists; only the Stripe
// webhook flips it to paid or failed. The email uniqueness lives on the
// table, not just in the pre-insert check.
type FoundingMember struct {
	BaseModel
	UserID   uuid.UUID `gorm:"index"`
	Email    string    `gorm:"uniqueIndex"`
	Phone    *string
	FullName string
	CPF      *string `gorm:"column:cpf"`

	AccountType string `gorm:"default:individual"`
	CompanyName *string
	CNPJ        *string `gorm:"column:cnpj"`

	CreciNumber *string `gorm:"index"`
	CreciUf     *string `gorm:"size:2"`

	PaymentStatus PaymentStatus `gorm:"index;default:pending"`
	// Minor units (centavos).
	PaymentAmount int64
	MemberNumber  int `gorm:"index"`

	Subdomain    *string `gorm:"uniqueIndex"`
	SelectedPlan string  `gorm:"default:founding_100"`

	StripePaymentIntentID *string `gorm:"index"`
	PaymentCompletedAt    *int64

	// Raw webhook payloads, failure reasons, etc.
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account Account `gorm:"foreignKey:UserID"`
}
