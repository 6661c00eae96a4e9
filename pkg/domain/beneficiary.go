package domain

import (
	"time"

	"github.com/google/uuid"
)

// Beneficiary is a saved withdrawal destination. The ID is assigned by the
// payment gateway when the beneficiary is registered there; a row only exists
// locally once the gateway registration succeeded.
type Beneficiary struct {
	ID              int64     `json:"id"`
	AccountNumber   string    `json:"account_number"`
	BankCode        string    `json:"bank_code"`
	BankName        string    `json:"bank_name"`
	BeneficiaryName string    `json:"beneficiary_name"`
	Currency        string    `json:"currency"`
	UserID          uuid.UUID `json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
