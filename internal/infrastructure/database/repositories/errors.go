package repositories

import (
	"fmt"
	apperrors "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/postgresql"
	"github.com/google/uuid"
)

// storageError wraps err with the failed operation. Timeouts and connection loss
// become UnavailableError; serialization failures stay visible to the Transactor.
func storageError(op string, err error) error {
	wrapped := fmt.Errorf("%s: %w", op, err)
	if postgresql.IsTransient(err) {
		return apperrors.NewUnavailableError(wrapped)
	}
	return wrapped
}

// validID reports whether id can be a primary key; anything else cannot resolve.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
