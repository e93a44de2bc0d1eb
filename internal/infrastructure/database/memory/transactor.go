package memory

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/rs/zerolog"
)

type TransactorImpl struct {
	logger *zerolog.Logger
}

// NewTransactorImpl creates a Transactor that undoes a unit's writes when fn fails.
// Units run concurrently: every write is atomic under the store lock and every undo
// reverses only its own effect, so units touching different merchants never wait on
// each other.
func NewTransactorImpl() repositories.Transactor {
	l := log.GetLogger()
	return &TransactorImpl{
		logger: &l,
	}
}

func (t *TransactorImpl) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(uowKey{}).(*unitOfWork); ok {
		return fn(ctx)
	}

	u := &unitOfWork{}
	if err := fn(context.WithValue(ctx, uowKey{}, u)); err != nil {
		for i := len(u.undo) - 1; i >= 0; i-- {
			u.undo[i]()
		}
		if len(u.undo) > 0 {
			t.logger.Debug().Err(err).Int("writes", len(u.undo)).Msg("unit of work rolled back")
		}
		return err
	}

	return nil
}
