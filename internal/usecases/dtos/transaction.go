package dtos

import (
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/card"
	"github.com/shopspring/decimal"
)

// CreateTransactionDTO is the payer's request. Card fields never leave the processor.
type CreateTransactionDTO struct {
	MerchantID     string          `json:"merchantId" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"amount"`
	Currency       string          `json:"currency" validate:"required,iso4217"`
	CardHolderName string          `json:"cardHolderName" validate:"required"`
	CardNumber     string          `json:"cardNumber" validate:"required,number,len=16"`
	Expiry         string          `json:"expiry" validate:"required,expiry"`
	CSV            string          `json:"csv" validate:"required,number,min=3,max=4"`
}

func (d *CreateTransactionDTO) Card() card.Card {
	return card.Card{
		Number:     d.CardNumber,
		HolderName: d.CardHolderName,
		Expiry:     d.Expiry,
		CSV:        d.CSV,
	}
}

// MaxPage is the highest page number a client may request.
const MaxPage = 1000000

// PageDTO is a raw page request; zero values are replaced by defaults.
type PageDTO struct {
	Page  int `json:"page" validate:"gte=0,lte=1000000"`
	Limit int `json:"limit" validate:"gte=0"`
}
