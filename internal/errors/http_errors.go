package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

type HTTPError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

// StatusCode maps an error kind to its HTTP status.
func StatusCode(err error) int {
	var (
		validationErr   *ValidationError
		notFoundErr     *NotFoundError
		cardExpiredErr  *CardExpiredError
		transitionErr   *InvalidTransitionError
		conflictErr     *ConflictError
		duplicateErr    *DuplicateError
		unavailableErr  *UnavailableError
		unauthorizedErr *UnauthorizedError
		forbiddenErr    *ForbiddenError
	)

	switch {
	case As(err, &validationErr), As(err, &cardExpiredErr), As(err, &transitionErr):
		return http.StatusBadRequest
	case As(err, &notFoundErr):
		return http.StatusNotFound
	case As(err, &conflictErr), As(err, &duplicateErr):
		return http.StatusConflict
	case As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	case As(err, &unauthorizedErr):
		return http.StatusUnauthorized
	case As(err, &forbiddenErr):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// HandleHTTPError handles http errors
func HandleHTTPError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "Internal server error"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(&HTTPError{
		StatusCode: code,
		Message:    message,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}
