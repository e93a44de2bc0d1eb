package interactor

import (
	"context"
	"fmt"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/config"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/dtos"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"strings"
)

type UserInteractor struct {
	userRepository repositories.UserRepository
	bcryptCost     int
	paging         config.Pagination
	logger         *zerolog.Logger
}

func NewUserInteractor(userRepository repositories.UserRepository, bcryptCost int, paging config.Pagination) *UserInteractor {
	l := log.GetLogger()
	return &UserInteractor{
		userRepository: userRepository,
		bcryptCost:     bcryptCost,
		paging:         paging,
		logger:         &l,
	}
}

// CreateUser registers a user with a bcrypt-hashed password.
func (u *UserInteractor) CreateUser(ctx context.Context, dto *dtos.CreateUserDTO) (*models.User, error) {
	role := models.Role(dto.Role)
	if _, ok := models.ValidRoles[role]; !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", dto.Role))
	}
	if dto.Password != dto.ConfirmPassword {
		return nil, apperrors.NewValidationError("confirmPassword must match password")
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	existing, err := u.userRepository.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewDuplicateEmailError(email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.userRepository.Create(ctx, &models.User{
		Email:          email,
		Name:           strings.TrimSpace(dto.Name),
		Role:           role,
		HashedPassword: string(hash),
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

func (u *UserInteractor) ListUsers(ctx context.Context, page dtos.PageDTO) (models.PaginatedResult[models.User], error) {
	return u.userRepository.List(ctx, normalizePage(page, u.paging))
}

// SeedAdmin creates the bootstrap admin unless the email is empty or already registered.
func (u *UserInteractor) SeedAdmin(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := u.userRepository.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	_, err = u.CreateUser(ctx, &dtos.CreateUserDTO{
		Name:            name,
		Email:           email,
		Role:            string(models.RoleAdmin),
		Password:        password,
		ConfirmPassword: password,
	})
	return err
}
