package models

import (
	"github.com/shopspring/decimal"
	"time"
)

type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusApproved TransactionStatus = "APPROVED"
	StatusDeclined TransactionStatus = "DECLINED"
)

// IsTerminal reports whether no further transition is permitted from s.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusDeclined
}

// CanTransition reports whether from -> to is an edge of the lifecycle.
func CanTransition(from, to TransactionStatus) bool {
	return from == StatusPending && to.IsTerminal()
}

// Transaction is a single payment attempt. CardLast4 is the only card data ever stored.
type Transaction struct {
	ID         string            `json:"id" db:"id"`
	MerchantID string            `json:"merchantId" db:"merchant_id"`
	Amount     decimal.Decimal   `json:"amount" db:"amount"`
	Currency   string            `json:"currency" db:"currency"`
	CardLast4  string            `json:"cardLast4" db:"card_last4"`
	Status     TransactionStatus `json:"status" db:"status"`
	CreatedAt  time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time         `json:"updatedAt" db:"updated_at"`
}

func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}
