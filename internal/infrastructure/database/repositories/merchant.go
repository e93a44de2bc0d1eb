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
	"github.com/shopspring/decimal"
)

type MerchantRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewMerchantRepositoryImpl(db *pgxpool.Pool) repositories.MerchantLedger {
	return &MerchantRepositoryImpl{
		db: db,
	}
}

const merchantColumns = `id::text, user_id::text, name, currency, balance, created_at, updated_at`

func (r *MerchantRepositoryImpl) Create(ctx context.Context, merchant *models.Merchant) (*models.Merchant, error) {
	if !validID(merchant.UserID) {
		return nil, apperrors.NewUserNotFoundError(merchant.UserID)
	}

	row := clientFrom(ctx, r.db).QueryRow(
		ctx,
		`INSERT INTO merchants (id, user_id, name, currency, balance)
		VALUES ($1, $2, $3, $4, $5::NUMERIC(16,2))
		RETURNING `+merchantColumns,
		uuid.NewString(), merchant.UserID, merchant.Name, merchant.Currency, merchant.Balance,
	)
	m, err := scanMerchant(row)
	if err != nil {
		switch {
		case postgresql.IsUniqueViolation(err):
			return nil, apperrors.NewDuplicateNameError(merchant.Name)
		case postgresql.IsForeignKeyViolation(err):
			return nil, apperrors.NewUserNotFoundError(merchant.UserID)
		}
		return nil, storageError("insert merchant", err)
	}

	return m, nil
}

func (r *MerchantRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Merchant, error) {
	if !validID(id) {
		return nil, apperrors.NewMerchantNotFoundError(id)
	}

	m, err := scanMerchant(clientFrom(ctx, r.db).QueryRow(ctx, "SELECT "+merchantColumns+" FROM merchants WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewMerchantNotFoundError(id)
		}
		return nil, storageError("get merchant", err)
	}

	return m, nil
}

func (r *MerchantRepositoryImpl) GetByName(ctx context.Context, name string) (*models.Merchant, error) {
	m, err := scanMerchant(clientFrom(ctx, r.db).QueryRow(ctx, "SELECT "+merchantColumns+" FROM merchants WHERE name = $1", name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("get merchant by name", err)
	}

	return m, nil
}

func (r *MerchantRepositoryImpl) List(ctx context.Context, page models.Page) (models.PaginatedResult[models.Merchant], error) {
	client := clientFrom(ctx, r.db)

	var total int
	if err := client.QueryRow(ctx, "SELECT COUNT(*) FROM merchants").Scan(&total); err != nil {
		return models.PaginatedResult[models.Merchant]{}, storageError("count merchants", err)
	}

	rows, err := client.Query(ctx,
		"SELECT "+merchantColumns+" FROM merchants ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2",
		page.Limit, page.Offset())
	if err != nil {
		return models.PaginatedResult[models.Merchant]{}, storageError("list merchants", err)
	}
	defer rows.Close()

	docs := make([]models.Merchant, 0, page.Limit)
	for rows.Next() {
		m, err := scanMerchant(rows)
		if err != nil {
			return models.PaginatedResult[models.Merchant]{}, storageError("scan merchant", err)
		}
		docs = append(docs, *m)
	}
	if err = rows.Err(); err != nil {
		return models.PaginatedResult[models.Merchant]{}, storageError("list merchants", err)
	}

	return models.NewPaginatedResult(docs, total, page), nil
}

// UpdateProfile changes name and/or currency; empty values keep the stored ones.
func (r *MerchantRepositoryImpl) UpdateProfile(ctx context.Context, id, name, currency string) (*models.Merchant, error) {
	if !validID(id) {
		return nil, apperrors.NewMerchantNotFoundError(id)
	}

	row := clientFrom(ctx, r.db).QueryRow(
		ctx,
		`UPDATE merchants
		SET name = COALESCE(NULLIF($2, ''), name),
		    currency = COALESCE(NULLIF($3, ''), currency),
		    updated_at = now()
		WHERE id = $1
		RETURNING `+merchantColumns,
		id, name, currency,
	)
	m, err := scanMerchant(row)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.NewMerchantNotFoundError(id)
		case postgresql.IsUniqueViolation(err):
			return nil, apperrors.NewDuplicateNameError(name)
		}
		return nil, storageError("update merchant", err)
	}

	return m, nil
}

const creditMerchant = `
UPDATE merchants
SET balance = balance + $2::NUMERIC(16,2), updated_at = now()
WHERE id = $1
RETURNING ` + merchantColumns

// Credit adds amount to the balance in a single UPDATE, so concurrent credits
// to one merchant serialize on the row and never lose an update.
func (r *MerchantRepositoryImpl) Credit(ctx context.Context, id string, amount decimal.Decimal) (*models.Merchant, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("credit amount must be positive")
	}
	if !validID(id) {
		return nil, apperrors.NewMerchantNotFoundError(id)
	}

	m, err := scanMerchant(clientFrom(ctx, r.db).QueryRow(ctx, creditMerchant, id, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewMerchantNotFoundError(id)
		}
		return nil, storageError("credit merchant", err)
	}

	return m, nil
}

func scanMerchant(row pgx.Row) (*models.Merchant, error) {
	var m models.Merchant
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Currency, &m.Balance, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
