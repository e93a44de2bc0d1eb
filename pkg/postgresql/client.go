package postgresql

import (
	"context"
	"errors"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/util/repeat"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"net"
	"time"
)

const ClientTimeout = 5 * time.Second

const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	uniqueViolation      = "23505"
	foreignKeyViolation  = "23503"
)

// Client is satisfied by both *pgxpool.Pool and pgx.Tx, so repositories can run
// the same statements inside or outside a unit of work.
type Client interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// NewClient opens a pool and pings it, retrying up to maxConnAttempts times.
func NewClient(cfg *pgxpool.Config, maxConnAttempts int) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	err := repeat.Repeat(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), ClientTimeout)
		defer cancel()

		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return err
		}

		if err = p.Ping(ctx); err != nil {
			p.Close()
			return err
		}

		pool = p
		return nil
	}, maxConnAttempts, ClientTimeout)

	if err != nil {
		return nil, err
	}

	return pool, nil
}

// IsSerializationFailure reports errors after which the whole transaction may be re-run.
func IsSerializationFailure(err error) bool {
	return hasSQLState(err, serializationFailure) || hasSQLState(err, deadlockDetected)
}

func IsUniqueViolation(err error) bool {
	return hasSQLState(err, uniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasSQLState(err, foreignKeyViolation)
}

// IsTransient reports connection loss and timeouts, as opposed to statement errors.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == code
}
