package http

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
)

type callerKey struct{}

// WithCaller stores the authenticated user for the rest of the request.
func WithCaller(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, callerKey{}, user)
}

// CallerFrom returns the authenticated user, or nil on an unauthenticated route.
func CallerFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(callerKey{}).(*models.User)
	return user
}
