package repositories

import (
	"context"
	"errors"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type txKey struct{}

type TransactorImpl struct {
	db         *pgxpool.Pool
	maxRetries int
	logger     *zerolog.Logger
}

// NewTransactorImpl creates a Transactor running units of work at READ COMMITTED.
// Guarded UPDATEs re-evaluate their WHERE clause against the latest row version
// after waiting on a row lock.
func NewTransactorImpl(db *pgxpool.Pool, maxRetries int) repositories.Transactor {
	l := log.GetLogger()
	return &TransactorImpl{
		db:         db,
		maxRetries: maxRetries,
		logger:     &l,
	}
}

// WithinTransaction runs fn in a database transaction. A serialization failure or
// deadlock rolls back and re-runs fn from scratch; any other error is returned as is.
// Nested calls join the outer transaction.
func (t *TransactorImpl) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	var err error
	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		err = t.run(ctx, fn)
		if err == nil || !postgresql.IsSerializationFailure(err) {
			return err
		}
		if ctx.Err() != nil {
			break
		}
		// retry transaction if serialization error occurs (SQLSTATE 40001, 40P01)
		t.logger.Debug().Err(err).Int("attempt", attempt+1).Msg("serialization failure, retrying unit of work")
	}

	return apperrors.NewUnavailableError(err)
}

func (t *TransactorImpl) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return storageError("begin transaction", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(context.Background()); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				t.logger.Error().Err(rbErr).Msg("rollback failed")
			}
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return storageError("commit transaction", err)
	}

	return nil
}

// clientFrom returns the unit-of-work transaction carried by ctx, or the pool.
func clientFrom(ctx context.Context, db *pgxpool.Pool) postgresql.Client {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}
