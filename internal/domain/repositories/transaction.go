package repositories

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/shopspring/decimal"
)

// TransactionStore owns transaction records and their status.
type TransactionStore interface {
	Create(ctx context.Context, merchantID string, amount decimal.Decimal, currency, maskedRef string) (*models.Transaction, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	// TransitionStatus moves id from -> to only if the stored status still equals from.
	// Otherwise it returns a ConflictError carrying the current status.
	TransitionStatus(ctx context.Context, id string, from, to models.TransactionStatus) (*models.Transaction, error)
	ListByMerchant(ctx context.Context, merchantID string, page models.Page) (models.PaginatedResult[models.Transaction], error)
	ListAll(ctx context.Context, page models.Page) (models.PaginatedResult[models.Transaction], error)
}
