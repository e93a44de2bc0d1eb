package middlewares

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	apperr "github.com/AhmedKotbb/simple-payment-geteway/internal/errors"
	http2 "github.com/AhmedKotbb/simple-payment-geteway/internal/infrastructure/api/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubAuthenticator map[string]*models.User

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	if u, ok := s[token]; ok {
		return u, nil
	}
	return nil, apperr.NewUnauthorizedError(apperr.ErrTokenInvalid)
}

type memoryIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]StoredResponse
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{entries: make(map[string]StoredResponse)}
}

func (s *memoryIdempotencyStore) Reserve(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; ok {
		return false, nil
	}
	s.entries[key] = StoredResponse{}
	return true, nil
}

func (s *memoryIdempotencyStore) Get(_ context.Context, key string) (*StoredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	return &resp, nil
}

func (s *memoryIdempotencyStore) Save(_ context.Context, key string, resp StoredResponse, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = resp
	return nil
}

func (s *memoryIdempotencyStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

var (
	admin   = &models.User{ID: "admin-1", Role: models.RoleAdmin}
	partner = &models.User{ID: "partner-1", Role: models.RolePartner}
)

func callerEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http2.WriteJSON(w, http.StatusOK, http2.CallerFrom(r.Context()).ID)
	})
}

func TestAuthMiddleware(t *testing.T) {
	auth := stubAuthenticator{"good": admin}
	handler := AuthMiddleware(auth, time.Second)(callerEcho())

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(http2.AuthorizationHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, int64(tt.status), gjson.Get(rec.Body.String(), "statusCode").Int())
			if tt.status == http.StatusOK {
				assert.Equal(t, admin.ID, gjson.Get(rec.Body.String(), "data").String())
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	auth := stubAuthenticator{"admin": admin, "partner": partner}
	handler := AuthMiddleware(auth, time.Second)(AdminOnly(callerEcho()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(http2.AuthorizationHeader, "Bearer partner")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apperr.ErrAdminRequired, gjson.Get(rec.Body.String(), "message").String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(http2.AuthorizationHeader, "Bearer admin")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	AdminOnly(callerEcho()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdempotencyReplaysResponse(t *testing.T) {
	var calls atomic.Int32
	handler := IdempotencyMiddleware(newMemoryIdempotencyStore(), time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		http2.WriteJSON(w, http.StatusCreated, n)
	}))

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/transactions", nil)
		if key != "" {
			req.Header.Set(http2.IdempotencyKeyHeader, key)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := send("k1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := send("k1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get(http2.IdempotentReplay))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int32(1), calls.Load())

	send("k2")
	send("")
	send("")
	assert.Equal(t, int32(4), calls.Load())
}

func TestIdempotencyKeyIsScopedToCaller(t *testing.T) {
	store := newMemoryIdempotencyStore()
	var calls atomic.Int32
	inner := IdempotencyMiddleware(store, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http2.WriteJSON(w, http.StatusCreated, nil)
	}))
	handler := AuthMiddleware(stubAuthenticator{"a": admin, "p": partner}, time.Second)(inner)

	for _, token := range []string{"a", "p", "a"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(http2.AuthorizationHeader, "Bearer "+token)
		req.Header.Set(http2.IdempotencyKeyHeader, "same")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, int32(2), calls.Load())
}

func TestIdempotencyInFlightConflict(t *testing.T) {
	store := newMemoryIdempotencyStore()
	_, err := store.Reserve(context.Background(), "busy", time.Hour)
	require.NoError(t, err)

	handler := IdempotencyMiddleware(store, time.Hour)(callerEcho())
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(http2.IdempotencyKeyHeader, "busy")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestIdempotencyDoesNotStoreServerErrors(t *testing.T) {
	store := newMemoryIdempotencyStore()
	var calls atomic.Int32
	handler := IdempotencyMiddleware(store, time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		apperr.HandleHTTPError(w, apperr.NewUnavailableError(context.DeadlineExceeded))
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(http2.IdempotencyKeyHeader, "retry-me")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	}

	assert.Equal(t, int32(2), calls.Load())
	resp, err := store.Get(context.Background(), "retry-me")
	require.NoError(t, err)
	assert.Nil(t, resp)
}
