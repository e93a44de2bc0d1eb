package routers

import (
	"fmt"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/di"
	http2 "github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/http"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/middlewares"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(container *di.Container) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	authenticated := middlewares.AuthMiddleware(container.AuthInteractor, container.RequestTimeout)
	merchantPath := fmt.Sprintf("/{%s}", http2.MerchantIDParam)
	transactionPath := fmt.Sprintf("/{%s}", http2.TransactionIDParam)

	// Set up v1 routes with a path prefix
	router.Route("/api/v1", func(r chi.Router) {
		uh := container.UserHandler
		r.Post("/auth/login", uh.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)

			r.Route("/users", func(r chi.Router) {
				r.Post("/", uh.CreateUser)
				r.Get("/", uh.ListUsers)
			})

			r.Route("/merchants", func(r chi.Router) {
				mh := container.MerchantHandler
				th := container.TransactionHandler
				r.Get("/", mh.ListMerchants)
				r.With(middlewares.AdminOnly).Post("/", mh.CreateMerchant)
				r.Route(merchantPath, func(r chi.Router) {
					r.Get("/", mh.GetMerchant)
					r.With(middlewares.AdminOnly).Patch("/", mh.UpdateMerchant)
					r.Get("/transactions", th.ListMerchantTransactions)
				})
			})

			r.Route("/transactions", func(r chi.Router) {
				th := container.TransactionHandler
				create := r.With()
				if container.IdempotencyStore != nil {
					create = r.With(middlewares.IdempotencyMiddleware(container.IdempotencyStore, container.IdempotencyTTL))
				}
				create.Post("/", th.CreateTransaction)

				r.Group(func(r chi.Router) {
					r.Use(middlewares.AdminOnly)
					r.Get("/", th.ListTransactions)
					r.Route(transactionPath, func(r chi.Router) {
						r.Get("/", th.GetTransaction)
						r.Post("/approve", th.ApproveTransaction)
						r.Post("/decline", th.DeclineTransaction)
					})
				})
			})
		})
	})

	return router
}
