package dtos

import (
	apperr "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func validTransaction() CreateTransactionDTO {
	return CreateTransactionDTO{
		MerchantID:     "m-1",
		Amount:         decimal.RequireFromString("100.50"),
		Currency:       "USD",
		CardHolderName: "Jane Doe",
		CardNumber:     "4242424242424242",
		Expiry:         "12/30",
		CSV:            "123",
	}
}

func TestValidateTransaction(t *testing.T) {
	dto := validTransaction()
	assert.NoError(t, Validate(&dto))

	tests := []struct {
		name   string
		mutate func(d *CreateTransactionDTO)
		field  string
	}{
		{"zero amount", func(d *CreateTransactionDTO) { d.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(d *CreateTransactionDTO) { d.Amount = decimal.NewFromInt(-1) }, "amount"},
		{"sub-cent amount", func(d *CreateTransactionDTO) { d.Amount = decimal.RequireFromString("1.005") }, "amount"},
		{"unknown currency", func(d *CreateTransactionDTO) { d.Currency = "XYZ" }, "currency"},
		{"short card", func(d *CreateTransactionDTO) { d.CardNumber = "4242" }, "cardNumber"},
		{"signed card", func(d *CreateTransactionDTO) { d.CardNumber = "+424242424242424" }, "cardNumber"},
		{"bad expiry", func(d *CreateTransactionDTO) { d.Expiry = "13/24" }, "expiry"},
		{"missing merchant", func(d *CreateTransactionDTO) { d.MerchantID = "" }, "merchantId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := validTransaction()
			tt.mutate(&dto)

			err := Validate(&dto)
			var validation *apperr.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Contains(t, validation.Message, tt.field)
		})
	}
}

func TestValidateMerchantBalanceMayBeZero(t *testing.T) {
	dto := CreateMerchantDTO{UserID: "u-1", Name: "Shop", Currency: "EUR"}
	assert.NoError(t, Validate(&dto))

	dto.Balance = decimal.NewFromInt(-10)
	assert.Error(t, Validate(&dto))
}

func TestValidateUserPasswordConfirmation(t *testing.T) {
	dto := CreateUserDTO{
		Name:            "Ops",
		Email:           "ops@example.com",
		Role:            "partner",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	}

	err := Validate(&dto)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirmPassword must match password")

	dto.ConfirmPassword = dto.Password
	assert.NoError(t, Validate(&dto))

	dto.Role = "root"
	assert.Error(t, Validate(&dto))
}

func TestValidatePageBounds(t *testing.T) {
	assert.NoError(t, Validate(&PageDTO{}))
	assert.NoError(t, Validate(&PageDTO{Page: MaxPage, Limit: 50}))

	err := Validate(&PageDTO{Page: MaxPage + 1})
	var validation *apperr.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "page")

	assert.Error(t, Validate(&PageDTO{Page: -1}))
}
