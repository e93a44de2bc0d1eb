package dtos

import "github.com/shopspring/decimal"

type CreateMerchantDTO struct {
	UserID   string          `json:"userId" validate:"required"`
	Name     string          `json:"name" validate:"required,max=120"`
	Currency string          `json:"currency" validate:"required,iso4217"`
	Balance  decimal.Decimal `json:"balance" validate:"balance"`
}

// UpdateMerchantDTO changes a merchant's profile. Empty fields are left untouched.
type UpdateMerchantDTO struct {
	Name     string `json:"name" validate:"omitempty,max=120"`
	Currency string `json:"currency" validate:"omitempty,iso4217"`
}
