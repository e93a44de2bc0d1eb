package memory

import (
	"context"
	"fmt"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionRepositoryImpl struct {
	store *Store
}

func NewTransactionRepositoryImpl(store *Store) repositories.TransactionStore {
	return &TransactionRepositoryImpl{store: store}
}

func (r *TransactionRepositoryImpl) Create(ctx context.Context, merchantID string, amount decimal.Decimal, currency, maskedRef string) (*models.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.merchants[merchantID]; !ok {
		return nil, apperrors.NewMerchantNotFoundError(merchantID)
	}

	now := s.now()
	rec := &transactionRecord{
		Transaction: models.Transaction{
			ID:         uuid.NewString(),
			MerchantID: merchantID,
			Amount:     amount.Round(2),
			Currency:   currency,
			CardLast4:  maskedRef,
			Status:     models.StatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		seq: s.next(),
	}
	s.transactions[rec.ID] = rec

	record(ctx, func() {
		s.mu.Lock()
		delete(s.transactions, rec.ID)
		s.mu.Unlock()
	})

	tx := rec.Transaction
	return &tx, nil
}

func (r *TransactionRepositoryImpl) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.transactions[id]
	if !ok {
		return nil, apperrors.NewTransactionNotFoundError(id)
	}

	tx := rec.Transaction
	return &tx, nil
}

// TransitionStatus compares and sets the status under the store lock.
func (r *TransactionRepositoryImpl) TransitionStatus(ctx context.Context, id string, from, to models.TransactionStatus) (*models.Transaction, error) {
	if !models.CanTransition(from, to) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("no transition from %s to %s", from, to))
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.transactions[id]
	if !ok {
		return nil, apperrors.NewTransactionNotFoundError(id)
	}
	if rec.Status != from {
		return nil, apperrors.NewConflictError("transaction", id, string(rec.Status))
	}

	prevUpdated := rec.UpdatedAt
	rec.Status = to
	rec.UpdatedAt = s.now()

	record(ctx, func() {
		s.mu.Lock()
		if rec.Status == to {
			rec.Status = from
			rec.UpdatedAt = prevUpdated
		}
		s.mu.Unlock()
	})

	tx := rec.Transaction
	return &tx, nil
}

func (r *TransactionRepositoryImpl) ListByMerchant(_ context.Context, merchantID string, page models.Page) (models.PaginatedResult[models.Transaction], error) {
	s := r.store
	s.mu.RLock()
	records := make([]*transactionRecord, 0)
	for _, rec := range s.transactions {
		if rec.MerchantID == merchantID {
			records = append(records, rec)
		}
	}
	sorted := sortTransactions(records)
	s.mu.RUnlock()

	return paginate(sorted, page), nil
}

func (r *TransactionRepositoryImpl) ListAll(_ context.Context, page models.Page) (models.PaginatedResult[models.Transaction], error) {
	s := r.store
	s.mu.RLock()
	records := make([]*transactionRecord, 0, len(s.transactions))
	for _, rec := range s.transactions {
		records = append(records, rec)
	}
	sorted := sortTransactions(records)
	s.mu.RUnlock()

	return paginate(sorted, page), nil
}
