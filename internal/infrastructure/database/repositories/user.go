package repositories

import (
	"context"
	"errors"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"strings"
)

type UserRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewUserRepositoryImpl(db *pgxpool.Pool) repositories.UserRepository {
	return &UserRepositoryImpl{
		db: db,
	}
}

const userColumns = `id::text, email, name, role, hashed_password, COALESCE(active_token_id, ''), created_at, updated_at`

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO users (id, email, name, role, hashed_password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		uuid.NewString(), email, user.Name, string(user.Role), user.HashedPassword,
	)
	u, err := scanUser(row)
	if err != nil {
		if postgresql.IsUniqueViolation(err) {
			return nil, apperrors.NewDuplicateEmailError(email)
		}
		return nil, storageError("insert user", err)
	}

	return u, nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*models.User, error) {
	if !validID(id) {
		return nil, apperrors.NewUserNotFoundError(id)
	}

	u, err := scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUserNotFoundError(id)
		}
		return nil, storageError("get user", err)
	}

	return u, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get user by email", err)
	}

	return u, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, page models.Page) (models.PaginatedResult[models.User], error) {
	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return models.PaginatedResult[models.User]{}, storageError("count users", err)
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2",
		page.Limit, page.Offset())
	if err != nil {
		return models.PaginatedResult[models.User]{}, storageError("list users", err)
	}
	defer rows.Close()

	docs := make([]models.User, 0, page.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return models.PaginatedResult[models.User]{}, storageError("scan user", err)
		}
		docs = append(docs, *u)
	}
	if err = rows.Err(); err != nil {
		return models.PaginatedResult[models.User]{}, storageError("list users", err)
	}

	return models.NewPaginatedResult(docs, total, page), nil
}

// SetActiveTokenID replaces the user's current login token id, invalidating older tokens.
func (r *UserRepositoryImpl) SetActiveTokenID(ctx context.Context, id, tokenID string) error {
	if !validID(id) {
		return apperrors.NewUserNotFoundError(id)
	}

	tag, err := r.db.Exec(ctx, "UPDATE users SET active_token_id = $2, updated_at = now() WHERE id = $1", id, tokenID)
	if err != nil {
		return storageError("set active token", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewUserNotFoundError(id)
	}

	return nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u    models.User
		role string
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &u.HashedPassword, &u.ActiveTokenID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}
