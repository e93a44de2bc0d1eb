package repositories

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns nil, nil when the email is unknown.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, page models.Page) (models.PaginatedResult[models.User], error)
	SetActiveTokenID(ctx context.Context, id, tokenID string) error
}
