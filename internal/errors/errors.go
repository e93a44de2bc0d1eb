package errors

import (
	"errors"
	"fmt"
)

const (
	ErrorFailedToConnectToTheDatabase = "Failed to connect to the database"
	ErrorFailedToMigrateTheDatabase   = "Failed to migrate the database"
	ErrorFailedToConnectToRedis       = "Failed to connect to redis"
	ErrorFailedToRunTheServer         = "Failed to run the server"
	ErrorFailedToShutdownTheServer    = "Failed to shutdown the server"
	ErrorFailedToSeedAdmin            = "Failed to seed the admin user"
	ErrFailedDecodeRequestBody        = "Failed to decode request body"
	ErrInvalidRequestBody             = "Invalid request body"
	ErrFailedProcessTransaction       = "Failed to process transaction"
	ErrFailedApproveTransaction       = "Failed to approve transaction"
	ErrFailedDeclineTransaction       = "Failed to decline transaction"
	ErrFailedGetTransaction           = "Failed to get transaction"
	ErrFailedListTransactions         = "Failed to list transactions"
	ErrFailedCreateMerchant           = "Failed to create merchant"
	ErrFailedUpdateMerchant           = "Failed to update merchant"
	ErrFailedGetMerchant              = "Failed to get merchant"
	ErrFailedListMerchants            = "Failed to list merchants"
	ErrFailedCreateUser               = "Failed to create user"
	ErrFailedListUsers                = "Failed to list users"
	ErrFailedLogin                    = "Failed to login"
	ErrTokenMissing                   = "Token missing"
	ErrTokenInvalid                   = "Token invalid or expired"
	ErrAdminRequired                  = "Admin access required"
	ErrCardExpired                    = "This card is expired, please contact your bank!"
	ErrNoChanges                      = "No new values to update."
)

// ValidationError reports malformed input caught before core logic runs.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NotFoundError reports an id that does not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func NewMerchantNotFoundError(id string) *NotFoundError {
	return NewNotFoundError("merchant", id)
}

func NewTransactionNotFoundError(id string) *NotFoundError {
	return NewNotFoundError("transaction", id)
}

func NewUserNotFoundError(id string) *NotFoundError {
	return NewNotFoundError("user", id)
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

type CardExpiredError struct{}

func NewCardExpiredError() *CardExpiredError {
	return &CardExpiredError{}
}

func (e *CardExpiredError) Error() string {
	return ErrCardExpired
}

// InvalidTransitionError is returned when a transaction is not in the status an action requires.
type InvalidTransitionError struct {
	Current string
	Action  string
}

func NewInvalidTransitionError(current, action string) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Action: action}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("Transaction is already %s. Only PENDING transactions can be %s.", e.Current, e.Action)
}

// ConflictError is returned by a guarded write whose expected prior state no longer holds.
type ConflictError struct {
	Entity  string
	ID      string
	Current string
}

func NewConflictError(entity, id, current string) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Current: current}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q was concurrently moved to %s", e.Entity, e.ID, e.Current)
}

// DuplicateError is returned when a unique field collides.
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

func NewDuplicateError(entity, field, value string) *DuplicateError {
	return &DuplicateError{Entity: entity, Field: field, Value: value}
}

func NewDuplicateNameError(name string) *DuplicateError {
	return NewDuplicateError("merchant", "name", name)
}

func NewDuplicateEmailError(email string) *DuplicateError {
	return NewDuplicateError("user", "email", email)
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// UnavailableError wraps a transient storage failure. Reads are safe to retry.
type UnavailableError struct {
	Err error
}

func NewUnavailableError(err error) *UnavailableError {
	return &UnavailableError{Err: err}
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

type UnauthorizedError struct {
	Message string
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

type ForbiddenError struct {
	Message string
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
