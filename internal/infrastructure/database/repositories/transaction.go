package repositories

import (
	"context"
	"errors"
	"fmt"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"strconv"
)

type TransactionRepositoryImpl struct {
	db     *pgxpool.Pool
	logger *zerolog.Logger
}

// NewTransactionRepositoryImpl creates new instance of TransactionRepositoryImpl.
func NewTransactionRepositoryImpl(db *pgxpool.Pool) repositories.TransactionStore {
	l := log.GetLogger()
	return &TransactionRepositoryImpl{
		db:     db,
		logger: &l,
	}
}

const transactionColumns = `id::text, merchant_id::text, amount, currency, card_last4, status, created_at, updated_at`

const insertTransaction = `
INSERT INTO transactions (id, merchant_id, amount, currency, card_last4, status)
VALUES ($1, $2, $3::NUMERIC(16,2), $4, $5, 'PENDING')
RETURNING ` + transactionColumns

// Create inserts a PENDING transaction. A merchant id that does not exist yields MerchantNotFound.
func (r *TransactionRepositoryImpl) Create(ctx context.Context, merchantID string, amount decimal.Decimal, currency, maskedRef string) (*models.Transaction, error) {
	if !validID(merchantID) {
		return nil, apperrors.NewMerchantNotFoundError(merchantID)
	}

	row := clientFrom(ctx, r.db).QueryRow(ctx, insertTransaction, uuid.NewString(), merchantID, amount, currency, maskedRef)
	tx, err := scanTransaction(row)
	if err != nil {
		if postgresql.IsForeignKeyViolation(err) {
			return nil, apperrors.NewMerchantNotFoundError(merchantID)
		}
		return nil, storageError("insert transaction", err)
	}

	return tx, nil
}

// GetByID returns transaction by id.
func (r *TransactionRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	if !validID(id) {
		return nil, apperrors.NewTransactionNotFoundError(id)
	}

	row := clientFrom(ctx, r.db).QueryRow(ctx, "SELECT "+transactionColumns+" FROM transactions WHERE id = $1", id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewTransactionNotFoundError(id)
		}
		return nil, storageError("get transaction", err)
	}

	return tx, nil
}

const transitionStatus = `
UPDATE transactions
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2
RETURNING ` + transactionColumns

// TransitionStatus applies from -> to in a single conditional UPDATE; only one
// concurrent caller can match status = from.
func (r *TransactionRepositoryImpl) TransitionStatus(ctx context.Context, id string, from, to models.TransactionStatus) (*models.Transaction, error) {
	if !models.CanTransition(from, to) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("no transition from %s to %s", from, to))
	}
	if !validID(id) {
		return nil, apperrors.NewTransactionNotFoundError(id)
	}

	row := clientFrom(ctx, r.db).QueryRow(ctx, transitionStatus, id, string(from), string(to))
	tx, err := scanTransaction(row)
	if err == nil {
		return tx, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storageError("transition transaction status", err)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.logger.Warn().Str("transaction_id", id).Str("current", string(current.Status)).Str("wanted", string(to)).Msg("guarded transition lost")

	return nil, apperrors.NewConflictError("transaction", id, string(current.Status))
}

// ListByMerchant returns one page of the merchant's transactions, newest first.
func (r *TransactionRepositoryImpl) ListByMerchant(ctx context.Context, merchantID string, page models.Page) (models.PaginatedResult[models.Transaction], error) {
	if !validID(merchantID) {
		return models.NewPaginatedResult[models.Transaction](nil, 0, page), nil
	}
	return r.list(ctx, "WHERE merchant_id = $1", []interface{}{merchantID}, page)
}

// ListAll returns one page of all transactions, newest first.
func (r *TransactionRepositoryImpl) ListAll(ctx context.Context, page models.Page) (models.PaginatedResult[models.Transaction], error) {
	return r.list(ctx, "", nil, page)
}

func (r *TransactionRepositoryImpl) list(ctx context.Context, where string, args []interface{}, page models.Page) (models.PaginatedResult[models.Transaction], error) {
	client := clientFrom(ctx, r.db)

	var total int
	if err := client.QueryRow(ctx, "SELECT COUNT(*) FROM transactions "+where, args...).Scan(&total); err != nil {
		return models.PaginatedResult[models.Transaction]{}, storageError("count transactions", err)
	}

	n := len(args)
	query := "SELECT " + transactionColumns + " FROM transactions " + where +
		" ORDER BY created_at DESC, id DESC LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)
	rows, err := client.Query(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return models.PaginatedResult[models.Transaction]{}, storageError("list transactions", err)
	}
	defer rows.Close()

	docs := make([]models.Transaction, 0, page.Limit)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return models.PaginatedResult[models.Transaction]{}, storageError("scan transaction", err)
		}
		docs = append(docs, *tx)
	}
	if err = rows.Err(); err != nil {
		return models.PaginatedResult[models.Transaction]{}, storageError("list transactions", err)
	}

	return models.NewPaginatedResult(docs, total, page), nil
}

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var (
		tx     models.Transaction
		status string
	)
	err := row.Scan(&tx.ID, &tx.MerchantID, &tx.Amount, &tx.Currency, &tx.CardLast4, &status, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	tx.Status = models.TransactionStatus(status)
	return &tx, nil
}
