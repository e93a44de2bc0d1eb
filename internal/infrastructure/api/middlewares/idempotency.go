package middlewares

import (
	"bytes"
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	http2 "github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/http"
	"github.com/AhmedKotbb/simple-payment-geteway/pkg/log"
	"github.com/go-chi/chi/v5/middleware"
	"net/http"
	"time"
)

const maxIdempotencyKeyLen = 255

// StoredResponse is a replayable response. Status 0 marks a request still in flight.
type StoredResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

// IdempotencyStore keeps responses by key for ttl.
type IdempotencyStore interface {
	// Reserve claims key for a new request; false means key was already claimed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (*StoredResponse, error)
	Save(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

// IdempotencyMiddleware replays the stored response for a repeated Idempotency-Key
// from the same caller. Requests without the header pass through. Server errors
// are not stored so the client may retry them. Store failures are logged and the
// request runs as if no key was sent.
func IdempotencyMiddleware(store IdempotencyStore, ttl time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := log.ForRequest(middleware.GetReqID(r.Context()))

			key := r.Header.Get(http2.IdempotencyKeyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLen {
				errors.HandleHTTPError(w, errors.NewValidationError("Idempotency-Key is too long"))
				return
			}
			if caller := http2.CallerFrom(r.Context()); caller != nil {
				key = caller.ID + ":" + key
			}

			ctx := r.Context()
			reserved, err := store.Reserve(ctx, key, ttl)
			if err != nil {
				logger.Warn().Err(err).Msg("idempotency store unavailable")
				next.ServeHTTP(w, r)
				return
			}

			if !reserved {
				stored, err := store.Get(ctx, key)
				if err != nil {
					logger.Warn().Err(err).Msg("idempotency store unavailable")
					next.ServeHTTP(w, r)
					return
				}
				if stored == nil || stored.Status == 0 {
					errors.HandleHTTPError(w, errors.NewConflictError("request", r.Header.Get(http2.IdempotencyKeyHeader), "in progress"))
					return
				}

				logger.Debug().Str("key", key).Msg("idempotent replay")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(http2.IdempotentReplay, "true")
				w.WriteHeader(stored.Status)
				_, _ = w.Write(stored.Body)
				return
			}

			var body bytes.Buffer
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)

			completed := false
			defer func() {
				// the request context may already be cancelled
				saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				if !completed || status >= http.StatusInternalServerError {
					if err := store.Release(saveCtx, key); err != nil {
						logger.Warn().Err(err).Msg("failed to release idempotency key")
					}
					return
				}
				if err := store.Save(saveCtx, key, StoredResponse{Status: status, Body: body.Bytes()}, ttl); err != nil {
					logger.Warn().Err(err).Msg("failed to save idempotent response")
				}
			}()

			next.ServeHTTP(ww, r)
			completed = true
		})
	}
}
