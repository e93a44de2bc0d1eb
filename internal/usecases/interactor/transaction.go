package interactor

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/config"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/card"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/dtos"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/rs/zerolog"
	"strings"
)

// TransactionInteractor drives a transaction from PENDING to APPROVED or DECLINED.
// It is the only place where a transaction status and a merchant balance change together.
type TransactionInteractor struct {
	transactions repositories.TransactionStore
	merchants    repositories.MerchantLedger
	transactor   repositories.Transactor
	verifier     *card.Verifier
	paging       config.Pagination
	logger       *zerolog.Logger
}

func NewTransactionInteractor(
	transactions repositories.TransactionStore,
	merchants repositories.MerchantLedger,
	transactor repositories.Transactor,
	verifier *card.Verifier,
	paging config.Pagination,
) *TransactionInteractor {
	l := log.GetLogger()
	return &TransactionInteractor{
		transactions: transactions,
		merchants:    merchants,
		transactor:   transactor,
		verifier:     verifier,
		paging:       paging,
		logger:       &l,
	}
}

// CreateTransaction verifies the card and stores a PENDING transaction. The merchant
// balance is not touched.
func (i *TransactionInteractor) CreateTransaction(ctx context.Context, dto *dtos.CreateTransactionDTO) (*models.Transaction, error) {
	verified, err := i.verifier.Verify(dto.Card())
	if err != nil {
		return nil, err
	}
	if verified.IsExpired {
		i.logger.Info().Str("merchant_id", dto.MerchantID).Str("card_last4", verified.MaskedRef).Msg("card expired")
		return nil, apperrors.NewCardExpiredError()
	}

	if _, err = i.merchants.GetByID(ctx, dto.MerchantID); err != nil {
		return nil, err
	}

	tx, err := i.transactions.Create(ctx, dto.MerchantID, dto.Amount.Round(2), strings.ToUpper(dto.Currency), verified.MaskedRef)
	if err != nil {
		return nil, err
	}

	i.logger.Info().
		Str("transaction_id", tx.ID).
		Str("merchant_id", tx.MerchantID).
		Str("amount", tx.Amount.StringFixed(2)).
		Str("card_last4", tx.CardLast4).
		Msg("transaction created")

	return tx, nil
}

// ApproveTransaction moves a PENDING transaction to APPROVED and credits its merchant
// in one unit of work. The guarded transition runs first, so a caller that loses a
// race fails before any credit is made.
func (i *TransactionInteractor) ApproveTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := i.loadPending(ctx, id, "approved")
	if err != nil {
		return nil, err
	}

	if _, err = i.merchants.GetByID(ctx, tx.MerchantID); err != nil {
		return nil, err
	}

	var (
		approved *models.Transaction
		merchant *models.Merchant
	)
	err = i.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		approved, err = i.transactions.TransitionStatus(ctx, id, models.StatusPending, models.StatusApproved)
		if err != nil {
			return err
		}
		merchant, err = i.merchants.Credit(ctx, approved.MerchantID, approved.Amount)
		return err
	})
	if err != nil {
		i.logger.Warn().Err(err).Str("transaction_id", id).Msg(apperrors.ErrFailedApproveTransaction)
		return nil, err
	}

	i.logger.Info().
		Str("transaction_id", approved.ID).
		Str("merchant_id", merchant.ID).
		Str("amount", approved.Amount.StringFixed(2)).
		Str("balance", merchant.Balance.StringFixed(2)).
		Msg("transaction approved")

	return approved, nil
}

// DeclineTransaction moves a PENDING transaction to DECLINED. The ledger is never touched.
func (i *TransactionInteractor) DeclineTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	if _, err := i.loadPending(ctx, id, "declined"); err != nil {
		return nil, err
	}

	declined, err := i.transactions.TransitionStatus(ctx, id, models.StatusPending, models.StatusDeclined)
	if err != nil {
		i.logger.Warn().Err(err).Str("transaction_id", id).Msg(apperrors.ErrFailedDeclineTransaction)
		return nil, err
	}

	i.logger.Info().Str("transaction_id", declined.ID).Msg("transaction declined")
	return declined, nil
}

func (i *TransactionInteractor) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return i.transactions.GetByID(ctx, id)
}

// ListTransactions returns one page of every transaction, newest first.
func (i *TransactionInteractor) ListTransactions(ctx context.Context, page dtos.PageDTO) (models.PaginatedResult[models.Transaction], error) {
	return i.transactions.ListAll(ctx, normalizePage(page, i.paging))
}

// ListMerchantTransactions returns one page of a merchant's transactions, newest first.
func (i *TransactionInteractor) ListMerchantTransactions(ctx context.Context, merchantID string, page dtos.PageDTO) (models.PaginatedResult[models.Transaction], error) {
	if _, err := i.merchants.GetByID(ctx, merchantID); err != nil {
		return models.PaginatedResult[models.Transaction]{}, err
	}
	return i.transactions.ListByMerchant(ctx, merchantID, normalizePage(page, i.paging))
}

// loadPending fails with InvalidTransition, naming the current status, unless id is PENDING.
func (i *TransactionInteractor) loadPending(ctx context.Context, id, action string) (*models.Transaction, error) {
	tx, err := i.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tx.IsPending() {
		return nil, apperrors.NewInvalidTransitionError(string(tx.Status), action)
	}
	return tx, nil
}
