package memory

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/google/uuid"
	"sort"
	"strings"
)

type UserRepositoryImpl struct {
	store *Store
}

func NewUserRepositoryImpl(store *Store) repositories.UserRepository {
	return &UserRepositoryImpl{store: store}
}

func (r *UserRepositoryImpl) Create(_ context.Context, user *models.User) (*models.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(user.Email))
	if _, taken := s.emails[email]; taken {
		return nil, apperrors.NewDuplicateEmailError(email)
	}

	now := s.now()
	rec := &userRecord{
		User: models.User{
			ID:             uuid.NewString(),
			Email:          email,
			Name:           user.Name,
			Role:           user.Role,
			HashedPassword: user.HashedPassword,
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		seq: s.next(),
	}
	s.users[rec.ID] = rec
	s.emails[email] = rec.ID

	u := rec.User
	return &u, nil
}

func (r *UserRepositoryImpl) GetByID(_ context.Context, id string) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewUserNotFoundError(id)
	}

	u := rec.User
	return &u, nil
}

func (r *UserRepositoryImpl) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}

	u := s.users[id].User
	return &u, nil
}

func (r *UserRepositoryImpl) List(_ context.Context, page models.Page) (models.PaginatedResult[models.User], error) {
	s := r.store
	s.mu.RLock()
	records := make([]*userRecord, 0, len(s.users))
	for _, rec := range s.users {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return newestFirst(records[i].CreatedAt, records[j].CreatedAt, records[i].seq, records[j].seq)
	})
	all := make([]models.User, len(records))
	for i, rec := range records {
		all[i] = rec.User
	}
	s.mu.RUnlock()

	return paginate(all, page), nil
}

func (r *UserRepositoryImpl) SetActiveTokenID(_ context.Context, id, tokenID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return apperrors.NewUserNotFoundError(id)
	}
	rec.ActiveTokenID = tokenID
	rec.UpdatedAt = s.now()

	return nil
}
