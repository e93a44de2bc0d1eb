package interactor

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/dtos"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/token"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const errInvalidCredentials = "Invalid email or password"

type AuthInteractor struct {
	userRepository repositories.UserRepository
	tokens         *token.Manager
	logger         *zerolog.Logger
}

func NewAuthInteractor(userRepository repositories.UserRepository, tokens *token.Manager) *AuthInteractor {
	l := log.GetLogger()
	return &AuthInteractor{
		userRepository: userRepository,
		tokens:         tokens,
		logger:         &l,
	}
}

// Login checks the password and issues a token bound to a fresh token id. Storing
// that id as the user's active one invalidates every earlier token.
func (a *AuthInteractor) Login(ctx context.Context, dto *dtos.LoginDTO) (*dtos.LoginResult, error) {
	user, err := a.userRepository.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewUnauthorizedError(errInvalidCredentials)
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(dto.Password)); err != nil {
		a.logger.Info().Str("user_id", user.ID).Msg("password mismatch")
		return nil, apperrors.NewUnauthorizedError(errInvalidCredentials)
	}

	tokenID := uuid.NewString()
	signed, expiresAt, err := a.tokens.Issue(user.ID, tokenID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	if err = a.userRepository.SetActiveTokenID(ctx, user.ID, tokenID); err != nil {
		return nil, err
	}
	user.ActiveTokenID = tokenID

	return &dtos.LoginResult{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// Authenticate resolves a bearer token to its user. Tokens from a superseded login are rejected.
func (a *AuthInteractor) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	claims, err := a.tokens.Parse(raw)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError(apperrors.ErrTokenInvalid)
	}

	user, err := a.userRepository.GetByID(ctx, claims.Subject)
	if err != nil {
		var notFound *apperrors.NotFoundError
		if apperrors.As(err, &notFound) {
			return nil, apperrors.NewUnauthorizedError(apperrors.ErrTokenInvalid)
		}
		return nil, err
	}
	if user.ActiveTokenID != claims.TokenID {
		return nil, apperrors.NewUnauthorizedError(apperrors.ErrTokenInvalid)
	}

	return user, nil
}
