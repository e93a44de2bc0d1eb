package memory

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"sort"
)

type MerchantRepositoryImpl struct {
	store *Store
}

func NewMerchantRepositoryImpl(store *Store) repositories.MerchantLedger {
	return &MerchantRepositoryImpl{store: store}
}

func (r *MerchantRepositoryImpl) Create(ctx context.Context, merchant *models.Merchant) (*models.Merchant, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[merchant.UserID]; !ok {
		return nil, apperrors.NewUserNotFoundError(merchant.UserID)
	}
	if _, taken := s.names[merchant.Name]; taken {
		return nil, apperrors.NewDuplicateNameError(merchant.Name)
	}
	if merchant.Balance.IsNegative() {
		return nil, apperrors.NewValidationError("balance must not be negative")
	}

	now := s.now()
	rec := &merchantRecord{
		Merchant: models.Merchant{
			ID:        uuid.NewString(),
			UserID:    merchant.UserID,
			Name:      merchant.Name,
			Currency:  merchant.Currency,
			Balance:   merchant.Balance.Round(2),
			CreatedAt: now,
			UpdatedAt: now,
		},
		seq: s.next(),
	}
	s.merchants[rec.ID] = rec
	s.names[rec.Name] = rec.ID

	record(ctx, func() {
		s.mu.Lock()
		delete(s.merchants, rec.ID)
		delete(s.names, rec.Name)
		s.mu.Unlock()
	})

	m := rec.Merchant
	return &m, nil
}

func (r *MerchantRepositoryImpl) GetByID(_ context.Context, id string) (*models.Merchant, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.merchants[id]
	if !ok {
		return nil, apperrors.NewMerchantNotFoundError(id)
	}

	m := rec.Merchant
	return &m, nil
}

func (r *MerchantRepositoryImpl) GetByName(_ context.Context, name string) (*models.Merchant, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.names[name]
	if !ok {
		return nil, nil
	}

	m := s.merchants[id].Merchant
	return &m, nil
}

func (r *MerchantRepositoryImpl) List(_ context.Context, page models.Page) (models.PaginatedResult[models.Merchant], error) {
	s := r.store
	s.mu.RLock()
	records := make([]*merchantRecord, 0, len(s.merchants))
	for _, rec := range s.merchants {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return newestFirst(records[i].CreatedAt, records[j].CreatedAt, records[i].seq, records[j].seq)
	})
	all := make([]models.Merchant, len(records))
	for i, rec := range records {
		all[i] = rec.Merchant
	}
	s.mu.RUnlock()

	return paginate(all, page), nil
}

func (r *MerchantRepositoryImpl) UpdateProfile(ctx context.Context, id, name, currency string) (*models.Merchant, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.merchants[id]
	if !ok {
		return nil, apperrors.NewMerchantNotFoundError(id)
	}
	if name != "" && name != rec.Name {
		if _, taken := s.names[name]; taken {
			return nil, apperrors.NewDuplicateNameError(name)
		}
	}

	prev := rec.Merchant
	if name != "" {
		delete(s.names, rec.Name)
		rec.Name = name
		s.names[name] = id
	}
	if currency != "" {
		rec.Currency = currency
	}
	rec.UpdatedAt = s.now()

	record(ctx, func() {
		s.mu.Lock()
		delete(s.names, rec.Name)
		rec.Name = prev.Name
		rec.Currency = prev.Currency
		rec.UpdatedAt = prev.UpdatedAt
		s.names[rec.Name] = id
		s.mu.Unlock()
	})

	m := rec.Merchant
	return &m, nil
}

// Credit adds amount under the store lock. Its undo subtracts the same amount,
// so credits applied by other callers in between are preserved.
func (r *MerchantRepositoryImpl) Credit(ctx context.Context, id string, amount decimal.Decimal) (*models.Merchant, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("credit amount must be positive")
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.merchants[id]
	if !ok {
		return nil, apperrors.NewMerchantNotFoundError(id)
	}

	amount = amount.Round(2)
	rec.Balance = rec.Balance.Add(amount)
	rec.UpdatedAt = s.now()

	record(ctx, func() {
		s.mu.Lock()
		rec.Balance = rec.Balance.Sub(amount)
		s.mu.Unlock()
	})

	m := rec.Merchant
	return &m, nil
}
