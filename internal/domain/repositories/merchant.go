package repositories

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/shopspring/decimal"
)

// MerchantLedger owns merchant records and the only balance mutation, Credit.
type MerchantLedger interface {
	Create(ctx context.Context, merchant *models.Merchant) (*models.Merchant, error)
	GetByID(ctx context.Context, id string) (*models.Merchant, error)
	// GetByName returns nil, nil when no merchant has the name.
	GetByName(ctx context.Context, name string) (*models.Merchant, error)
	List(ctx context.Context, page models.Page) (models.PaginatedResult[models.Merchant], error)
	UpdateProfile(ctx context.Context, id, name, currency string) (*models.Merchant, error)
	// Credit atomically adds amount (> 0) to the merchant balance.
	Credit(ctx context.Context, id string, amount decimal.Decimal) (*models.Merchant, error)
}
