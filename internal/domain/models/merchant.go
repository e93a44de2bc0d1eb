package models

import (
	"github.com/shopspring/decimal"
	"time"
)

// Merchant is an onboarded business. Balance only changes through transaction approval.
type Merchant struct {
	ID        string          `json:"id" db:"id"`
	UserID    string          `json:"userId" db:"user_id"`
	Name      string          `json:"name" db:"name"`
	Currency  string          `json:"currency" db:"currency"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}
