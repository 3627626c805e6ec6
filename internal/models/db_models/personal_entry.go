package db_models

import "github.com/google/uuid"

// Personal-finance rows behind /api/personal. Deliberately thin; the API
// contract for these is raw row JSON, not the response envelope.

type PersonalExpense struct {
	BaseModel
	UserID      uuid.UUID `gorm:"index" json:"user_id"`
	Description string    `json:"description"`
	// Minor units (centavos).
	Amount   int64  `json:"amount"`
	Category string `json:"category"`
	Date     string `gorm:"index" json:"date"`
}

type PersonalIncome struct {
	BaseModel
	UserID      uuid.UUID `gorm:"index" json:"user_id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Category    string    `json:"category"`
	Date        string    `gorm:"index" json:"date"`
}
