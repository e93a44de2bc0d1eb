package interactor

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/config"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/dtos"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/rs/zerolog"
	"strings"
)

type MerchantInteractor struct {
	merchants repositories.MerchantLedger
	users     repositories.UserRepository
	paging    config.Pagination
	logger    *zerolog.Logger
}

func NewMerchantInteractor(merchants repositories.MerchantLedger, users repositories.UserRepository, paging config.Pagination) *MerchantInteractor {
	l := log.GetLogger()
	return &MerchantInteractor{
		merchants: merchants,
		users:     users,
		paging:    paging,
		logger:    &l,
	}
}

// CreateMerchant onboards a business for an existing user. Names are unique.
func (i *MerchantInteractor) CreateMerchant(ctx context.Context, dto *dtos.CreateMerchantDTO) (*models.Merchant, error) {
	if dto.Balance.IsNegative() {
		return nil, apperrors.NewValidationError("balance must not be negative")
	}

	if _, err := i.users.GetByID(ctx, dto.UserID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	existing, err := i.merchants.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewDuplicateNameError(name)
	}

	merchant, err := i.merchants.Create(ctx, &models.Merchant{
		UserID:   dto.UserID,
		Name:     name,
		Currency: strings.ToUpper(dto.Currency),
		Balance:  dto.Balance.Round(2),
	})
	if err != nil {
		return nil, err
	}

	i.logger.Info().Str("merchant_id", merchant.ID).Str("user_id", merchant.UserID).Msg("merchant created")
	return merchant, nil
}

func (i *MerchantInteractor) GetMerchant(ctx context.Context, id string) (*models.Merchant, error) {
	return i.merchants.GetByID(ctx, id)
}

func (i *MerchantInteractor) ListMerchants(ctx context.Context, page dtos.PageDTO) (models.PaginatedResult[models.Merchant], error) {
	return i.merchants.List(ctx, normalizePage(page, i.paging))
}

// UpdateMerchant changes name and/or currency. The balance cannot be set here.
func (i *MerchantInteractor) UpdateMerchant(ctx context.Context, id string, dto *dtos.UpdateMerchantDTO) (*models.Merchant, error) {
	current, err := i.merchants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	currency := strings.ToUpper(dto.Currency)
	if name == current.Name {
		name = ""
	}
	if currency == current.Currency {
		currency = ""
	}
	if name == "" && currency == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrNoChanges)
	}

	if name != "" {
		existing, err := i.merchants.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.NewDuplicateNameError(name)
		}
	}

	updated, err := i.merchants.UpdateProfile(ctx, id, name, currency)
	if err != nil {
		return nil, err
	}

	i.logger.Info().Str("merchant_id", id).Msg("merchant updated")
	return updated, nil
}
