package middlewares

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	http2 "github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/http"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/go-chi/chi/v5/middleware"
	"net/http"
	"strings"
	"time"
)

const bearerPrefix = "Bearer "

// Authenticator resolves a raw bearer token to the user it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware rejects requests without a valid, current bearer token and puts
// the caller into the request context.
func AuthMiddleware(auth Authenticator, timeout time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.ForRequest(middleware.GetReqID(r.Context()))

			header := r.Header.Get(http2.AuthorizationHeader)
			raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			if !strings.HasPrefix(header, bearerPrefix) || raw == "" {
				errors.HandleHTTPError(w, errors.NewUnauthorizedError(errors.ErrTokenMissing))
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			user, err := auth.Authenticate(ctx, raw)
			cancel()
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("authentication failed")
				errors.HandleHTTPError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(http2.WithCaller(r.Context(), user)))
		})
	}
}

// AdminOnly lets through callers with the admin role. It must run after AuthMiddleware.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := http2.CallerFrom(r.Context())
		if caller == nil {
			errors.HandleHTTPError(w, errors.NewUnauthorizedError(errors.ErrTokenMissing))
			return
		}
		if !caller.IsAdmin() {
			logger := log.ForRequest(middleware.GetReqID(r.Context()))
			logger.Info().Str("user_id", caller.ID).Str("path", r.URL.Path).Msg(errors.ErrAdminRequired)
			errors.HandleHTTPError(w, errors.NewForbiddenError(errors.ErrAdminRequired))
			return
		}

		next.ServeHTTP(w, r)
	})
}
