package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("amount must be positive"), http.StatusBadRequest},
		{"card expired", NewCardExpiredError(), http.StatusBadRequest},
		{"invalid transition", NewInvalidTransitionError("APPROVED", "approved"), http.StatusBadRequest},
		{"not found", NewMerchantNotFoundError("m-1"), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", NewTransactionNotFoundError("t-1")), http.StatusNotFound},
		{"conflict", NewConflictError("transaction", "t-1", "DECLINED"), http.StatusConflict},
		{"duplicate", NewDuplicateNameError("acme"), http.StatusConflict},
		{"unavailable", NewUnavailableError(context.DeadlineExceeded), http.StatusServiceUnavailable},
		{"unauthorized", NewUnauthorizedError(ErrTokenMissing), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError(ErrAdminRequired), http.StatusForbidden},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusCode(tc.err))
		})
	}
}

func TestInvalidTransitionMessageNamesCurrentStatus(t *testing.T) {
	err := NewInvalidTransitionError("APPROVED", "declined")
	assert.Contains(t, err.Error(), "APPROVED")
	assert.Contains(t, err.Error(), "declined")
}

func TestHandleHTTPErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHTTPError(rec, fmt.Errorf("pq: password authentication failed"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body HTTPError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Internal server error", body.Message)
	assert.Equal(t, http.StatusInternalServerError, body.StatusCode)
}

func TestUnavailableUnwraps(t *testing.T) {
	err := NewUnavailableError(context.DeadlineExceeded)
	assert.True(t, Is(err, context.DeadlineExceeded))
}
