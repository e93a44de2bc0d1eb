package di

import (
	"github.com/AhmedKotbb/simple-payment-geteway/internal/config"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/card"
	domain "github.com/AhmedKotbb/simple-payment-geteway/internal/domain/repositories"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/handlers"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/middlewares"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/database/memory"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/database/repositories"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/usecases/interactor"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/token"
	"github.com/jackc/pgx/v5/pgxpool"
	"time"
)

// Storage is the set of repositories one backend provides.
type Storage struct {
	Users        domain.UserRepository
	Merchants    domain.MerchantLedger
	Transactions domain.TransactionStore
	Transactor   domain.Transactor
}

// NewPostgresStorage builds the pgx-backed repositories.
func NewPostgresStorage(db *pgxpool.Pool, maxTxRetries int) Storage {
	return Storage{
		Users:        repositories.NewUserRepositoryImpl(db),
		Merchants:    repositories.NewMerchantRepositoryImpl(db),
		Transactions: repositories.NewTransactionRepositoryImpl(db),
		Transactor:   repositories.NewTransactorImpl(db, maxTxRetries),
	}
}

// NewMemoryStorage builds process-local repositories sharing one store.
func NewMemoryStorage() Storage {
	store := memory.NewStore()
	return Storage{
		Users:        memory.NewUserRepositoryImpl(store),
		Merchants:    memory.NewMerchantRepositoryImpl(store),
		Transactions: memory.NewTransactionRepositoryImpl(store),
		Transactor:   memory.NewTransactorImpl(),
	}
}

type Container struct {
	UserInteractor        *interactor.UserInteractor
	AuthInteractor        *interactor.AuthInteractor
	MerchantInteractor    *interactor.MerchantInteractor
	TransactionInteractor *interactor.TransactionInteractor

	UserHandler        *handlers.UserHandler
	MerchantHandler    *handlers.MerchantHandler
	TransactionHandler *handlers.TransactionHandler

	// IdempotencyStore is nil when no Redis is configured.
	IdempotencyStore middlewares.IdempotencyStore
	IdempotencyTTL   time.Duration
	RequestTimeout   time.Duration
}

// NewContainer creates a new Container instance.
func NewContainer(cfg *config.Config, storage Storage, idempotency middlewares.IdempotencyStore) *Container {
	timeout := cfg.Server.Timeout()
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	userInteractor := interactor.NewUserInteractor(storage.Users, cfg.Auth.Cost(), cfg.Pagination)
	authInteractor := interactor.NewAuthInteractor(storage.Users, tokens)
	merchantInteractor := interactor.NewMerchantInteractor(storage.Merchants, storage.Users, cfg.Pagination)
	transactionInteractor := interactor.NewTransactionInteractor(
		storage.Transactions,
		storage.Merchants,
		storage.Transactor,
		card.NewVerifier(),
		cfg.Pagination,
	)

	return &Container{
		UserInteractor:        userInteractor,
		AuthInteractor:        authInteractor,
		MerchantInteractor:    merchantInteractor,
		TransactionInteractor: transactionInteractor,

		UserHandler:        handlers.NewUserHandler(userInteractor, authInteractor, timeout),
		MerchantHandler:    handlers.NewMerchantHandler(merchantInteractor, timeout),
		TransactionHandler: handlers.NewTransactionHandler(transactionInteractor, timeout),

		IdempotencyStore: idempotency,
		IdempotencyTTL:   cfg.Redis.TTL(),
		RequestTimeout:   timeout,
	}
}
